// Package config 는 게이트웨이의 프로세스 설정을 제공한다.
//
// 설정은 프로세스 시작 시 한 번만 읽히며 런타임 재설정은 없다.
// .env 파일이 있으면 godotenv로 먼저 읽어들인 뒤 환경 변수를 참조한다.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BearerMode 는 베어러 토큰 발행 방식.
type BearerMode string

const (
	// BearerModeCredential 은 토큰 페이로드에 자격 증명을 직접 담는 방식.
	// 서버 측 상태가 전혀 없지만, 토큰 수명 동안 원본 비밀번호가 토큰 안을 돈다.
	BearerModeCredential BearerMode = "credential"
	// BearerModeSession 은 토큰에 불투명한 세션 핸들만 담고,
	// 포털 세션을 서버 메모리에 캐시하는 방식. 핸들 만료 시 세션도 함께 폐기된다.
	BearerModeSession BearerMode = "session"
)

// Config 는 기동 시 읽어들이는 게이트웨이 설정값.
type Config struct {
	// AppName 은 서비스 이름.
	AppName string
	// AppVersion 은 /health 가 반환하는 버전 문자열.
	AppVersion string
	// SecretKey 는 JWT 서명에 쓰는 대칭 키.
	SecretKey string
	// Algorithm 은 JWT 서명 알고리즘 이름 (HS256/HS384/HS512).
	Algorithm string
	// AccessTokenTTL 은 발급한 토큰의 유효 기간.
	AccessTokenTTL time.Duration
	// DefaultHospitalCode 는 요청에 병원 코드가 없을 때 쓰는 기본값.
	DefaultHospitalCode string
	// PortalBaseURL 은 KUMC 회원 포털의 베이스 URL.
	PortalBaseURL string
	// Mode 는 베어러 토큰 발행 방식.
	Mode BearerMode
	// Port 는 HTTP 서버의 리슨 포트.
	Port string
	// AllowOrigins 는 CORS 허용 오리진 목록. "*" 하나면 모든 오리진을 허용한다.
	AllowOrigins []string
}

// Load 는 환경 변수에서 설정을 읽어들인다.
// .env 파일은 있으면 읽고 없으면 무시한다. 값이 잘못된 경우에만 에러를 반환한다.
func Load() (*Config, error) {
	// .env 가 없을 때의 에러는 무시한다
	_ = godotenv.Load()

	cfg := &Config{
		AppName:             "KUMC Anam Medical Portal",
		AppVersion:          "0.1.0",
		SecretKey:           getEnvOr("SECRET_KEY", "your-super-secret-key-change-in-production"),
		Algorithm:           getEnvOr("ALGORITHM", "HS256"),
		DefaultHospitalCode: getEnvOr("DEFAULT_HOSPITAL_CODE", "AA"),
		PortalBaseURL:       getEnvOr("PORTAL_BASE_URL", "https://member.anam.kumc.or.kr"),
		Port:                getEnvOr("PORT", "8080"),
	}

	minutes := getEnvOr("ACCESS_TOKEN_EXPIRE_MINUTES", "60")
	n, err := strconv.Atoi(minutes)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES 값이 잘못되었습니다: %q", minutes)
	}
	cfg.AccessTokenTTL = time.Duration(n) * time.Minute

	mode := BearerMode(getEnvOr("BEARER_MODE", string(BearerModeCredential)))
	switch mode {
	case BearerModeCredential, BearerModeSession:
		cfg.Mode = mode
	default:
		return nil, fmt.Errorf("BEARER_MODE 값이 잘못되었습니다: %q (credential 또는 session)", mode)
	}

	for _, o := range strings.Split(getEnvOr("CORS_ALLOW_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	return cfg, nil
}

// getEnvOr 는 환경 변수를 읽고, 설정되어 있지 않으면 기본값을 반환한다.
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
