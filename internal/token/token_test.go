package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// testSecret 은 테스트용 서명 키.
const testSecret = "test-secret-key-for-unit-tests"

// newTestService 는 테스트용 토큰 서비스를 생성한다.
func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()

	svc, err := New(testSecret, "HS256", ttl)
	if err != nil {
		t.Fatalf("New()에서 에러 발생: %v", err)
	}
	return svc
}

// TestNew 는 New 함수를 검증한다.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("HS256/HS384/HS512 로 서비스를 생성할 수 있을 것", func(t *testing.T) {
		t.Parallel()

		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			if _, err := New(testSecret, alg, time.Hour); err != nil {
				t.Errorf("New(%q)에서 에러 발생: %v", alg, err)
			}
		}
	})

	t.Run("알 수 없는 알고리즘 이름은 에러가 될 것", func(t *testing.T) {
		t.Parallel()

		if _, err := New(testSecret, "HS999", time.Hour); !errors.Is(err, ErrUnknownAlgorithm) {
			t.Errorf("err = %v, want ErrUnknownAlgorithm", err)
		}
	})

	t.Run("HMAC 계열이 아닌 알고리즘은 에러가 될 것", func(t *testing.T) {
		t.Parallel()

		if _, err := New(testSecret, "RS256", time.Hour); !errors.Is(err, ErrUnknownAlgorithm) {
			t.Errorf("err = %v, want ErrUnknownAlgorithm", err)
		}
	})
}

// TestServiceIssueDecode 는 발급한 토큰의 왕복(발급→검증)을 검증한다.
func TestServiceIssueDecode(t *testing.T) {
	t.Parallel()

	t.Run("발급한 토큰에서 자격 증명을 복원할 수 있을 것", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, time.Hour)
		tokenStr, err := svc.Issue("u1", "p1")
		if err != nil {
			t.Fatalf("Issue()에서 에러 발생: %v", err)
		}

		claims, err := svc.Decode(tokenStr)
		if err != nil {
			t.Fatalf("Decode()에서 에러 발생: %v", err)
		}

		memberID, password, err := claims.Credentials()
		if err != nil {
			t.Fatalf("Credentials()에서 에러 발생: %v", err)
		}
		if memberID != "u1" {
			t.Errorf("memberID = %q, want %q", memberID, "u1")
		}
		if password != "p1" {
			t.Errorf("password = %q, want %q", password, "p1")
		}
		if claims.Issuer != "anam-gateway" {
			t.Errorf("Issuer = %q, want %q", claims.Issuer, "anam-gateway")
		}
		if claims.ID == "" {
			t.Error("jti 클레임이 비어 있음")
		}
	})

	t.Run("ASCII 자격 증명 쌍이 그대로 왕복될 것", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, time.Hour)
		pairs := [][2]string{
			{"member001", "pass!word#123"},
			{"a", "b"},
			{"user-with-dash", strings.Repeat("x", 256)},
		}
		for _, pair := range pairs {
			tokenStr, err := svc.Issue(pair[0], pair[1])
			if err != nil {
				t.Fatalf("Issue(%q)에서 에러 발생: %v", pair[0], err)
			}
			claims, err := svc.Decode(tokenStr)
			if err != nil {
				t.Fatalf("Decode()에서 에러 발생: %v", err)
			}
			id, pw, err := claims.Credentials()
			if err != nil {
				t.Fatalf("Credentials()에서 에러 발생: %v", err)
			}
			if id != pair[0] || pw != pair[1] {
				t.Errorf("왕복 결과 = (%q, %q), want (%q, %q)", id, pw, pair[0], pair[1])
			}
		}
	})

	t.Run("만료 시각이 TTL 후로 설정될 것", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		svc := newTestService(t, 30*time.Minute)
		tokenStr, err := svc.Issue("u-exp", "p-exp")
		if err != nil {
			t.Fatalf("Issue()에서 에러 발생: %v", err)
		}

		claims, err := svc.Decode(tokenStr)
		if err != nil {
			t.Fatalf("Decode()에서 에러 발생: %v", err)
		}

		want := before.Add(30 * time.Minute)
		if claims.ExpiresAt.Time.Before(want.Add(-time.Minute)) || claims.ExpiresAt.Time.After(want.Add(time.Minute)) {
			t.Errorf("ExpiresAt = %v, want %v 전후 1분 이내", claims.ExpiresAt.Time, want)
		}
	})

	t.Run("만료된 토큰은 ErrInvalidToken 이 될 것", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, -time.Minute)
		tokenStr, err := svc.Issue("u-old", "p-old")
		if err != nil {
			t.Fatalf("Issue()에서 에러 발생: %v", err)
		}

		if _, err := svc.Decode(tokenStr); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("서명이 변조된 토큰은 ErrInvalidToken 이 될 것", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, time.Hour)
		tokenStr, err := svc.Issue("u-tamper", "p-tamper")
		if err != nil {
			t.Fatalf("Issue()에서 에러 발생: %v", err)
		}

		// 서명 파트의 마지막 문자를 바꾼다
		tampered := tokenStr[:len(tokenStr)-2] + "xx"
		if _, err := svc.Decode(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("다른 키로 서명된 토큰은 ErrInvalidToken 이 될 것", func(t *testing.T) {
		t.Parallel()

		other, err := New("another-secret", "HS256", time.Hour)
		if err != nil {
			t.Fatalf("New()에서 에러 발생: %v", err)
		}
		tokenStr, err := other.Issue("u-diff", "p-diff")
		if err != nil {
			t.Fatalf("Issue()에서 에러 발생: %v", err)
		}

		svc := newTestService(t, time.Hour)
		if _, err := svc.Decode(tokenStr); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("형식이 망가진 토큰은 ErrInvalidToken 이 될 것", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, time.Hour)
		if _, err := svc.Decode("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("다른 알고리즘으로 서명된 토큰은 거부될 것", func(t *testing.T) {
		t.Parallel()

		// HS512 로 서명하고 HS256 서비스로 검증한다
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Subject:   "u-alg",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("토큰 서명에 실패: %v", err)
		}

		svc := newTestService(t, time.Hour)
		if _, err := svc.Decode(signed); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})
}

// TestClaimsMissing 은 필수 클레임이 빠진 토큰의 처리를 검증한다.
func TestClaimsMissing(t *testing.T) {
	t.Parallel()

	t.Run("pwd 가 없는 토큰의 Credentials 는 ErrMissingClaim 이 될 것", func(t *testing.T) {
		t.Parallel()

		// sub 만 있는, 서명은 올바른 토큰을 직접 만든다
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "u-nopwd",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("토큰 서명에 실패: %v", err)
		}

		svc := newTestService(t, time.Hour)
		claims, err := svc.Decode(signed)
		if err != nil {
			t.Fatalf("Decode()에서 에러 발생: %v", err)
		}

		if _, _, err := claims.Credentials(); !errors.Is(err, ErrMissingClaim) {
			t.Errorf("err = %v, want ErrMissingClaim", err)
		}
	})

	t.Run("sid 가 없는 토큰의 SessionID 는 ErrMissingClaim 이 될 것", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, time.Hour)
		tokenStr, err := svc.Issue("u-nosid", "p-nosid")
		if err != nil {
			t.Fatalf("Issue()에서 에러 발생: %v", err)
		}

		claims, err := svc.Decode(tokenStr)
		if err != nil {
			t.Fatalf("Decode()에서 에러 발생: %v", err)
		}
		if _, err := claims.SessionID(); !errors.Is(err, ErrMissingClaim) {
			t.Errorf("err = %v, want ErrMissingClaim", err)
		}
	})

	t.Run("IssueSession 토큰에서 세션 핸들을 복원할 수 있을 것", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, time.Hour)
		tokenStr, err := svc.IssueSession("handle-123")
		if err != nil {
			t.Fatalf("IssueSession()에서 에러 발생: %v", err)
		}

		claims, err := svc.Decode(tokenStr)
		if err != nil {
			t.Fatalf("Decode()에서 에러 발생: %v", err)
		}
		sid, err := claims.SessionID()
		if err != nil {
			t.Fatalf("SessionID()에서 에러 발생: %v", err)
		}
		if sid != "handle-123" {
			t.Errorf("sid = %q, want %q", sid, "handle-123")
		}

		// 세션 토큰에는 자격 증명이 없어야 한다
		if _, _, err := claims.Credentials(); !errors.Is(err, ErrMissingClaim) {
			t.Errorf("err = %v, want ErrMissingClaim", err)
		}
	})
}
