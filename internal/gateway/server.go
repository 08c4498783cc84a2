package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumc-dev/anam-gateway/internal/config"
	"github.com/kumc-dev/anam-gateway/internal/portal"
	"github.com/kumc-dev/anam-gateway/internal/session"
	"github.com/kumc-dev/anam-gateway/internal/token"
	"github.com/kumc-dev/anam-gateway/pkg/middleware"
)

// clientFactory 는 자격 증명으로 포털 클라이언트를 만드는 함수.
// 테스트에서 더블로 바꿔 끼울 수 있도록 주입 가능하게 한다.
type clientFactory func(memberID, password string) portal.Client

// Server 는 회원 포털 게이트웨이의 HTTP 서버.
type Server struct {
	// router 는 gin HTTP 라우터.
	router *gin.Engine
	// cfg 는 기동 시 읽어들인 프로세스 설정.
	cfg *config.Config
	// tokens 는 베어러 토큰의 발급/검증 서비스.
	tokens *token.Service
	// sessions 는 포털 세션의 서버 측 캐시. session 방식일 때만 존재한다.
	sessions *session.Store
	// newClient 는 포털 클라이언트 팩토리.
	newClient clientFactory
}

// NewServer 는 새 게이트웨이 서버를 생성한다.
func NewServer(cfg *config.Config) (*Server, error) {
	tokens, err := token.New(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("토큰 서비스 초기화에 실패: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowOrigins))

	s := &Server{
		router: router,
		cfg:    cfg,
		tokens: tokens,
		newClient: func(memberID, password string) portal.Client {
			return portal.New(cfg.PortalBaseURL, memberID, password)
		},
	}
	if cfg.Mode == config.BearerModeSession {
		s.sessions = session.NewStore(cfg.AccessTokenTTL)
	}
	s.setupRoutes()

	return s, nil
}

// Run 은 HTTP 서버를 기동한다.
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.cfg.Port))
}

// Close 는 서버가 들고 있는 자원을 정리한다.
func (s *Server) Close() {
	if s.sessions != nil {
		s.sessions.Close()
	}
}

// setupRoutes 는 API 라우팅을 설정한다.
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	// 인증 불필요
	api.POST("/auth/login", s.handleLogin())

	// 베어러 토큰 필수
	authed := api.Group("")
	authed.Use(middleware.BearerAuth(s.tokens))
	{
		authed.GET("/user/info", s.handleUserInfo())
		authed.POST("/reservations", s.handleReservations())
		authed.POST("/lab-tests", s.handleLabTests())
		authed.POST("/medications", s.handleMedications())
		authed.POST("/outpatient-history", s.handleOutpatientHistory())
		authed.POST("/hospitalization-history", s.handleHospitalizationHistory())
		authed.POST("/payments", s.handlePayments())
		authed.POST("/payments/detail", s.handlePaymentDetail())
	}

	// 헬스 체크
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": s.cfg.AppVersion})
	})
}

// handleLogin 은 포털 자격 증명을 검증하고 베어러 토큰을 발급하는 핸들러를 반환한다.
// 포털 로그인 실패는 HTTP 에러가 아니라 success=false 봉투로 반환한다.
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}

		client := s.newClient(req.Username, req.Password)
		if err := client.SignIn(c.Request.Context()); err != nil {
			_ = client.Close()
			c.JSON(http.StatusOK, loginResponse{
				Success:   false,
				Message:   fmt.Sprintf("로그인 실패: %v", err),
				TokenType: "bearer",
			})
			return
		}

		var accessToken string
		var err error
		if s.sessions != nil {
			// 로그인된 포털 세션을 캐시하고, 토큰에는 핸들만 담는다
			accessToken, err = s.tokens.IssueSession(s.sessions.Put(client))
		} else {
			_ = client.Close()
			accessToken, err = s.tokens.Issue(req.Username, req.Password)
		}
		if err != nil {
			log.Printf("토큰 발급 에러: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "토큰 발급에 실패했습니다"})
			return
		}

		c.JSON(http.StatusOK, loginResponse{
			Success:     true,
			Message:     "로그인 성공",
			AccessToken: accessToken,
			TokenType:   "bearer",
		})
	}
}

// handleUserInfo 는 로그인한 회원의 프로필을 조회하는 핸들러를 반환한다.
func (s *Server) handleUserInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.Info(ctx)
		})
	}
}

// handleReservations 는 기간 내 진료 예약 목록을 조회하는 핸들러를 반환한다.
func (s *Server) handleReservations() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dateRangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}
		req.applyDefaults(s.cfg.DefaultHospitalCode)

		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.Reservations(ctx, req.HospitalCode, req.StartDate, req.EndDate)
		})
	}
}

// handleLabTests 는 기간 내 진단 검사 결과를 조회하는 핸들러를 반환한다.
func (s *Server) handleLabTests() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dateRangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}
		req.applyDefaults(s.cfg.DefaultHospitalCode)

		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.HealthCheckResults(ctx, req.HospitalCode, req.StartDate, req.EndDate)
		})
	}
}

// handleMedications 는 기간 내 약 처방 이력을 조회하는 핸들러를 반환한다.
func (s *Server) handleMedications() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dateRangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}
		req.applyDefaults(s.cfg.DefaultHospitalCode)

		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.MedicationHistory(ctx, req.HospitalCode, req.StartDate, req.EndDate)
		})
	}
}

// handleOutpatientHistory 는 기간 내 외래 진료 이력을 조회하는 핸들러를 반환한다.
// 요청의 inquiry_type 값과 무관하게 외래 구분 코드로 조회한다.
func (s *Server) handleOutpatientHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req careHistoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}
		req.applyDefaults(s.cfg.DefaultHospitalCode)

		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.CareHistory(ctx, req.HospitalCode, req.StartDate, req.EndDate, inquiryTypeOutpatient)
		})
	}
}

// handleHospitalizationHistory 는 기간 내 입퇴원 이력을 조회하는 핸들러를 반환한다.
// 요청의 inquiry_type 값과 무관하게 입퇴원 구분 코드로 조회한다.
func (s *Server) handleHospitalizationHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req careHistoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}
		req.applyDefaults(s.cfg.DefaultHospitalCode)

		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.CareHistory(ctx, req.HospitalCode, req.StartDate, req.EndDate, inquiryTypeInpatient)
		})
	}
}

// handlePayments 는 기간 내 수납 완료 목록을 조회하는 핸들러를 반환한다.
func (s *Server) handlePayments() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}
		req.applyDefaults(s.cfg.DefaultHospitalCode)

		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.PaidList(ctx, req.HospitalCode, req.StartDate, req.EndDate, req.CodeDivision)
		})
	}
}

// handlePaymentDetail 은 수납 번호로 수납 상세를 조회하는 핸들러를 반환한다.
func (s *Server) handlePaymentDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentDetailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("요청이 올바르지 않습니다: %v", err)})
			return
		}
		req.applyDefaults(s.cfg.DefaultHospitalCode)

		s.proxy(c, func(ctx context.Context, client portal.Client) (any, error) {
			return client.PaidDetail(ctx, req.HospitalCode, req.MdrpNo)
		})
	}
}

// proxy 는 조회 엔드포인트의 공통 처리.
// 검증된 클레임에서 포털 세션을 복원하고, 정확히 하나의 포털 조작을
// 실행해 결과를 공통 봉투에 담는다. 포털 측의 모든 실패(인증 실패,
// 통신 장애, 응답 손상)는 HTTP 200 의 실패 봉투로 정규화한다.
func (s *Server) proxy(c *gin.Context, call func(ctx context.Context, client portal.Client) (any, error)) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "유효하지 않은 인증 토큰입니다."})
		return
	}
	ctx := c.Request.Context()

	if s.sessions != nil {
		sid, err := claims.SessionID()
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "인증 정보를 확인할 수 없습니다."})
			return
		}
		client, ok := s.sessions.Get(sid)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "세션이 만료되었습니다. 다시 로그인해 주세요."})
			return
		}

		// 캐시된 포털 세션은 닫지 않고 재사용한다
		data, err := call(ctx, client)
		if err != nil {
			c.JSON(http.StatusOK, apiResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
		return
	}

	memberID, password, err := claims.Credentials()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "인증 정보를 확인할 수 없습니다."})
		return
	}

	client := s.newClient(memberID, password)
	// 성공/실패 어느 경로에서도 포털 세션을 정리한다
	defer func() {
		_ = client.Close()
	}()

	if err := client.SignIn(ctx); err != nil {
		c.JSON(http.StatusOK, apiResponse{Success: false, Message: err.Error()})
		return
	}

	data, err := call(ctx, client)
	if err != nil {
		c.JSON(http.StatusOK, apiResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}
