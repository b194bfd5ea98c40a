package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unbem/unbem/utils"
)

// ContextIdentityKey is the key used to store the anonymous identity in Gin context.
const ContextIdentityKey = "identity"

// IdentityRequired ensures the request carries a valid anonymous identity
// token. Moods are scoped per identity, so the calendar endpoints need it;
// forum reads and writes do not.
func IdentityRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		identity, err := utils.ParseIdentityToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid identity token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextIdentityKey, identity)
		ctx.Next()
	}
}

// Identity extracts the anonymous identity set by IdentityRequired.
func Identity(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(ContextIdentityKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}
