package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenAuth rejects requests whose `t` query parameter does not match the
// configured shared secret. It runs before body parsing, so an unauthorized
// caller never reaches the generator.
func TokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.Query("t")
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			log.Printf("[AUTH] Rejected request from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
				"code":  "UNAUTHORIZED",
			})
			return
		}
		c.Next()
	}
}
