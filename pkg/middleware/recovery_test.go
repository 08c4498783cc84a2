package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestRecovery 는 Recovery 미들웨어를 검증한다.
func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("패닉이 발생하면 500 이 될 것", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/panic", func(_ *gin.Context) {
			panic("테스트용 패닉")
		})

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("상태 코드 = %d, want %d", w.Code, http.StatusInternalServerError)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("응답 바디 해석에 실패: %v", err)
		}
		if body["error"] != "내부 서버 오류가 발생했습니다" {
			t.Errorf("error = %q, want %q", body["error"], "내부 서버 오류가 발생했습니다")
		}
	})

	t.Run("패닉이 없으면 핸들러 응답이 그대로 반환될 것", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("상태 코드 = %d, want %d", w.Code, http.StatusOK)
		}
	})
}
