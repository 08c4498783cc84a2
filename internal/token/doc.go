// Package token 은 서명된 단기 베어러 토큰의 발급과 검증을 제공한다.
//
// 토큰은 자기완결적(self-contained)이다. 서버 측 세션 테이블 없이
// 서명 검증과 만료 확인만으로 유효성이 결정되며, TTL 이 지나기 전에는
// 어떤 서버 상태 변경으로도 무효화되지 않는다.
package token
