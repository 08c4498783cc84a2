// 고려대학교 안암병원 회원 포털 게이트웨이의 엔트리 포인트.
// 포털 자격 증명을 검증해 베어러 토큰을 발급하고, 진료 기록 조회를
// 포털에 중계한다. 외부에 공개되는 유일한 서비스이며 보안 경계가 된다.
package main

import (
	"log"

	"github.com/kumc-dev/anam-gateway/internal/config"
	"github.com/kumc-dev/anam-gateway/internal/gateway"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드에 실패: %v", err)
	}

	server, err := gateway.NewServer(cfg)
	if err != nil {
		log.Fatalf("게이트웨이 서버의 초기화에 실패: %v", err)
	}
	defer server.Close()

	log.Printf("%s 를 기동합니다: :%s", cfg.AppName, cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("게이트웨이 서비스의 기동에 실패: %v", err)
	}
}
