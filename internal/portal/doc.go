// Package portal 은 KUMC 회원 포털의 업스트림 클라이언트를 제공한다.
//
// 포털 세션은 쿠키로 유지된다. 클라이언트는 생성 시 받은 자격 증명으로
// SignIn 을 수행하고, 이후의 조회 호출은 같은 쿠키 세션 위에서 실행된다.
// 조회 결과의 스키마는 포털이 소유하며, 이 패키지는 해석하지 않고
// 그대로(불투명하게) 반환한다.
package portal
