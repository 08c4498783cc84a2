package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// defaultTimeout 은 외부 서비스 호출의 기본 타임아웃.
const defaultTimeout = 30 * time.Second

// Client 는 쿠키 세션을 유지하는 JSON HTTP 클라이언트.
// 클라이언트마다 독립된 쿠키 저장소를 가지므로 세션이 섞이지 않는다.
type Client struct {
	// httpClient 는 내부에서 사용하는 HTTP 클라이언트.
	httpClient *http.Client
	// baseURL 은 접속할 서비스의 베이스 URL.
	baseURL string
}

// New 는 새 쿠키 세션 JSON 클라이언트를 생성한다.
// baseURL 에는 접속할 서비스의 베이스 URL 을 지정한다.
func New(baseURL string) *Client {
	// cookiejar.New 는 옵션이 nil 이면 에러를 반환하지 않는다
	jar, _ := cookiejar.New(nil)
	return &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
	}
}

// PostJSON 은 지정 경로에 JSON 바디로 POST 요청을 보낸다.
// 응답 바디를 result 에 역직렬화한다.
func (c *Client) PostJSON(ctx context.Context, path string, body any, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, result)
}

// GetJSON 은 지정 경로에 GET 요청을 보낸다.
// 응답 바디를 result 에 역직렬화한다.
func (c *Client) GetJSON(ctx context.Context, path string, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, result)
}

// CloseIdleConnections 는 유휴 커넥션을 닫는다.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doJSON 은 JSON 형식 HTTP 요청의 공통 처리.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("요청 바디 직렬화에 실패: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTP 요청 생성에 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP 요청 송신에 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP 오류: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("응답 바디 역직렬화에 실패: %w", err)
		}
	}
	return nil
}
