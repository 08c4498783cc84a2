// Package gateway 는 회원 포털 게이트웨이의 HTTP 서버를 제공한다.
//
// 로그인 엔드포인트에서 포털 자격 증명을 검증해 단기 베어러 토큰을
// 발급하고, 이후의 의료 기록 조회 요청을 포털에 중개한다. 조회 결과는
// 해석하지 않고 공통 봉투 {success, message, data} 에 그대로 담아
// 반환한다. 요청 간에 공유되는 상태는 없으며, 각 요청의 포털 세션은
// 그 요청 안에서 획득되고 정리된다.
package gateway
