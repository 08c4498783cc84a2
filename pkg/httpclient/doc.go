// Package httpclient 는 쿠키 세션을 유지하는 JSON HTTP 클라이언트를 제공한다.
//
// 회원 포털처럼 로그인 세션이 쿠키로 유지되는 외부 서비스와의 통신에
// 사용한다. 요청/응답의 JSON 직렬화와 HTTP 상태 코드 검사를 공통화한다.
package httpclient
