package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery 는 패닉에서 복구하는 gin 미들웨어를 반환한다.
// 패닉 발생 시 로그를 남기고 500 에러를 반환한다.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "내부 서버 오류가 발생했습니다",
				})
			}
		}()
		c.Next()
	}
}
