// Package middleware 는 게이트웨이에서 쓰는 gin 미들웨어를 제공한다.
//
// 베어러 토큰 검증, 패닉 복구, CORS 를 담당한다. 토큰 검증에 실패한
// 요청은 비즈니스 핸들러에 도달하기 전에 401 로 끝난다.
package middleware
