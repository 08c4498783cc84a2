package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kumc-dev/anam-gateway/pkg/httpclient"
)

// resultCodeOK 는 포털 응답의 정상 결과 코드.
const resultCodeOK = "0000"

// Client 는 회원 포털에 대한 조회 조작의 집합.
// 게이트웨이 핸들러와 테스트 더블이 공유하는 계약이다.
type Client interface {
	// SignIn 은 생성 시 받은 자격 증명으로 포털에 로그인한다.
	SignIn(ctx context.Context) error
	// Info 는 로그인한 회원의 프로필을 조회한다.
	Info(ctx context.Context) (any, error)
	// Reservations 는 기간 내 진료 예약 목록을 조회한다.
	Reservations(ctx context.Context, hospitalCode string, startDate, endDate int) (any, error)
	// HealthCheckResults 는 기간 내 진단 검사 결과를 조회한다.
	HealthCheckResults(ctx context.Context, hospitalCode string, startDate, endDate int) (any, error)
	// MedicationHistory 는 기간 내 약 처방 이력을 조회한다.
	MedicationHistory(ctx context.Context, hospitalCode string, startDate, endDate int) (any, error)
	// CareHistory 는 기간 내 진료 이력을 조회한다. inquiryType 2 는 외래, 3 은 입퇴원.
	CareHistory(ctx context.Context, hospitalCode string, startDate, endDate, inquiryType int) (any, error)
	// PaidList 는 기간 내 수납 완료 목록을 조회한다. codeDivision O 는 외래, I 는 입원.
	PaidList(ctx context.Context, hospitalCode string, startDate, endDate int, codeDivision string) (any, error)
	// PaidDetail 은 수납 번호로 수납 상세를 조회한다.
	PaidDetail(ctx context.Context, hospitalCode string, paymentNo int) (any, error)
	// Close 는 포털 세션을 정리한다. 여러 번 불려도 안전하다.
	Close() error
}

// KUMCClient 는 Client 의 HTTP 구현.
// 자격 증명은 생성자 파라미터로만 전달되며, 프로세스 환경 변수 등
// 암묵적 상태를 통해서는 절대 전달되지 않는다.
type KUMCClient struct {
	// memberID 는 포털 회원 ID.
	memberID string
	// password 는 포털 로그인 비밀번호.
	password string
	// http 는 쿠키로 포털 세션을 유지하는 HTTP 클라이언트.
	http *httpclient.Client
}

// 컴파일 타임에 인터페이스 구현을 확인한다.
var _ Client = (*KUMCClient)(nil)

// New 는 새 포털 클라이언트를 생성한다.
// 포털 세션은 쿠키로 유지되므로 클라이언트마다 독립된 쿠키 저장소를 가진다.
func New(baseURL, memberID, password string) *KUMCClient {
	return &KUMCClient{
		memberID: memberID,
		password: password,
		http:     httpclient.New(baseURL),
	}
}

// response 는 포털 API 의 공통 응답 봉투.
type response struct {
	// Code 는 결과 코드. "0000" 이외는 실패.
	Code string `json:"resltCd"`
	// Message 는 결과 메시지.
	Message string `json:"resltMsg"`
	// Data 는 조회 결과. 스키마는 포털이 소유한다.
	Data json.RawMessage `json:"data"`
}

// SignIn 은 포털에 로그인해 세션 쿠키를 획득한다.
func (c *KUMCClient) SignIn(ctx context.Context) error {
	_, err := c.post(ctx, "/api/v1/member/login", map[string]any{
		"memId":  c.memberID,
		"memPwd": c.password,
	})
	return err
}

// Info 는 로그인한 회원의 프로필을 조회한다.
func (c *KUMCClient) Info(ctx context.Context) (any, error) {
	return c.get(ctx, "/api/v1/member/info")
}

// Reservations 는 기간 내 진료 예약 목록을 조회한다.
func (c *KUMCClient) Reservations(ctx context.Context, hospitalCode string, startDate, endDate int) (any, error) {
	return c.post(ctx, "/api/v1/medical/reservation/list", map[string]any{
		"hpCd":    hospitalCode,
		"apstYmd": startDate,
		"apfnYmd": endDate,
	})
}

// HealthCheckResults 는 기간 내 진단 검사 결과를 조회한다.
func (c *KUMCClient) HealthCheckResults(ctx context.Context, hospitalCode string, startDate, endDate int) (any, error) {
	return c.post(ctx, "/api/v1/medical/health-check/result", map[string]any{
		"hpCd":    hospitalCode,
		"strtYmd": startDate,
		"fnshYmd": endDate,
	})
}

// MedicationHistory 는 기간 내 약 처방 이력을 조회한다.
func (c *KUMCClient) MedicationHistory(ctx context.Context, hospitalCode string, startDate, endDate int) (any, error) {
	return c.post(ctx, "/api/v1/medical/medication/history", map[string]any{
		"hpCd":     hospitalCode,
		"ordrYmd1": startDate,
		"ordrYmd2": endDate,
	})
}

// CareHistory 는 기간 내 진료 이력을 조회한다.
func (c *KUMCClient) CareHistory(ctx context.Context, hospitalCode string, startDate, endDate, inquiryType int) (any, error) {
	return c.post(ctx, "/api/v1/medical/care/history", map[string]any{
		"hpCd":        hospitalCode,
		"inqrStrtYmd": startDate,
		"inqrFnshYmd": endDate,
		"inqrDvsnCd":  inquiryType,
	})
}

// PaidList 는 기간 내 수납 완료 목록을 조회한다.
func (c *KUMCClient) PaidList(ctx context.Context, hospitalCode string, startDate, endDate int, codeDivision string) (any, error) {
	return c.post(ctx, "/api/v1/payment/payed/list", map[string]any{
		"hpCd":    hospitalCode,
		"strtYmd": startDate,
		"fnshYmd": endDate,
		"codvCd":  codeDivision,
	})
}

// PaidDetail 은 수납 번호로 수납 상세를 조회한다.
func (c *KUMCClient) PaidDetail(ctx context.Context, hospitalCode string, paymentNo int) (any, error) {
	return c.post(ctx, "/api/v1/payment/payed/detail", map[string]any{
		"hpCd":   hospitalCode,
		"mdrpNo": paymentNo,
	})
}

// Close 는 유휴 커넥션을 닫아 세션을 정리한다.
func (c *KUMCClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// get 은 포털에 GET 요청을 보낸다.
func (c *KUMCClient) get(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// post 는 포털에 JSON 바디로 POST 요청을 보낸다.
func (c *KUMCClient) post(ctx context.Context, path string, params any) (any, error) {
	return c.do(ctx, http.MethodPost, path, params)
}

// do 는 포털 요청의 공통 처리. 공통 응답 봉투를 해석해
// 결과 코드가 정상이면 데이터 부분만 그대로 반환한다.
func (c *KUMCClient) do(ctx context.Context, method, path string, params any) (any, error) {
	var envelope response
	var err error
	if method == http.MethodGet {
		err = c.http.GetJSON(ctx, path, &envelope)
	} else {
		err = c.http.PostJSON(ctx, path, params, &envelope)
	}
	if err != nil {
		return nil, fmt.Errorf("포털과의 통신에 실패: %w", err)
	}

	if envelope.Code != resultCodeOK {
		return nil, fmt.Errorf("포털 오류 (%s): %s", envelope.Code, envelope.Message)
	}

	if len(envelope.Data) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("포털 응답 데이터 해석에 실패: %w", err)
	}
	return data, nil
}
