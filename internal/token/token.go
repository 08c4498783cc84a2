package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// issuer 는 발급 토큰의 iss 클레임 값.
const issuer = "anam-gateway"

var (
	// ErrInvalidToken 은 서명 검증 실패, 페이로드 손상, 만료된 토큰을 나타낸다.
	ErrInvalidToken = errors.New("유효하지 않은 인증 토큰입니다")
	// ErrMissingClaim 은 서명은 올바르지만 필수 클레임이 빠진 토큰을 나타낸다.
	ErrMissingClaim = errors.New("인증 정보를 확인할 수 없습니다")
	// ErrUnknownAlgorithm 은 설정된 서명 알고리즘 이름을 해석할 수 없음을 나타낸다.
	ErrUnknownAlgorithm = errors.New("알 수 없는 서명 알고리즘입니다")
)

// Claims 는 게이트웨이가 발급하는 JWT 의 페이로드.
//
// credential 방식에서는 sub/pwd 에 포털 자격 증명이 그대로 들어가고,
// session 방식에서는 sid 에 불투명한 세션 핸들만 들어간다.
type Claims struct {
	jwt.RegisteredClaims
	// Password 는 포털 로그인 비밀번호. credential 방식에서만 존재한다.
	Password string `json:"pwd,omitempty"`
	// Session 은 서버 측 세션 캐시의 핸들. session 방식에서만 존재한다.
	Session string `json:"sid,omitempty"`
}

// Credentials 는 클레임에서 포털 자격 증명을 꺼낸다.
// sub 또는 pwd 가 없으면 ErrMissingClaim 을 반환한다.
func (c *Claims) Credentials() (memberID, password string, err error) {
	if c.Subject == "" || c.Password == "" {
		return "", "", ErrMissingClaim
	}
	return c.Subject, c.Password, nil
}

// SessionID 는 클레임에서 세션 핸들을 꺼낸다.
// sid 가 없으면 ErrMissingClaim 을 반환한다.
func (c *Claims) SessionID() (string, error) {
	if c.Session == "" {
		return "", ErrMissingClaim
	}
	return c.Session, nil
}

// Service 는 서명된 단기 베어러 토큰의 발급과 검증을 담당한다.
// 서명 키와 알고리즘은 프로세스 기동 시 고정된다. 폐기(revocation) 메커니즘은 없다.
type Service struct {
	// secret 은 HMAC 서명용 대칭 키.
	secret []byte
	// method 는 서명 알고리즘.
	method jwt.SigningMethod
	// ttl 은 발급 토큰의 유효 기간.
	ttl time.Duration
}

// New 는 새 토큰 서비스를 생성한다.
// algorithm 은 HS256/HS384/HS512 중 하나여야 한다.
func New(secret, algorithm string, ttl time.Duration) (*Service, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %q (HMAC 계열만 지원)", ErrUnknownAlgorithm, algorithm)
	}

	return &Service{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

// Issue 는 포털 자격 증명을 담은 토큰을 발급한다.
// 발급은 순수한 암호학적 패키징이며, 자격 증명의 사전 검증은 호출 측의 책임이다.
func (s *Service) Issue(memberID, password string) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: s.registered(memberID),
		Password:         password,
	})
}

// IssueSession 은 세션 핸들만 담은 토큰을 발급한다.
func (s *Service) IssueSession(sessionID string) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: s.registered(""),
		Session:          sessionID,
	})
}

// registered 는 공통 등록 클레임을 만든다.
func (s *Service) registered(subject string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
}

// sign 은 클레임에 서명해 토큰 문자열을 만든다.
func (s *Service) sign(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("토큰 서명에 실패: %w", err)
	}
	return signed, nil
}

// Decode 는 토큰의 서명과 만료를 검증하고 클레임을 반환한다.
// 검증에 실패하면 ErrInvalidToken 을 반환한다.
func (s *Service) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
