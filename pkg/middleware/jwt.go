package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kumc-dev/anam-gateway/internal/token"
)

// contextKeyClaims 는 gin 컨텍스트에 검증된 클레임을 저장하는 키.
const contextKeyClaims = "claims"

// BearerAuth 는 Authorization 헤더의 베어러 토큰을 검증하는 gin 미들웨어를 반환한다.
// 검증에 성공하면 컨텍스트에 클레임을 저장한다. 서명 불일치, 만료,
// 페이로드 손상은 모두 401 로 끝난다.
func BearerAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization 헤더가 필요합니다",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearer 토큰 형식이 올바르지 않습니다",
			})
			return
		}

		claims, err := tokens.Decode(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "유효하지 않은 인증 토큰입니다.",
			})
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims 는 gin 컨텍스트에서 검증된 클레임을 꺼낸다.
// BearerAuth 미들웨어가 먼저 적용되어 있어야 하며, 없으면 nil 을 반환한다.
func GetClaims(c *gin.Context) *token.Claims {
	v, _ := c.Get(contextKeyClaims)
	if claims, ok := v.(*token.Claims); ok {
		return claims
	}
	return nil
}
