package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alessioferri/trattoria-app/utils"
)

// CartCookieName holds the anonymous session-bound cart token.
const CartCookieName = "cart_token"

// IdentityMiddleware resolves the caller's cart identity. A valid bearer
// token wins: the identity is the user id regardless of any anonymous cookie
// (no merge of an anonymous cart into the user's cart happens on login).
// Unauthenticated callers get a random cart token cookie on first contact.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := utils.ParseToken(tokenString); err == nil && claims.UserID != 0 {
				c.Set("user_id", claims.UserID)
				c.Set("email", claims.Email)
				c.Set("is_admin", claims.IsAdmin)
				c.Next()
				return
			}
		}

		token, err := c.Cookie(CartCookieName)
		if err != nil || token == "" {
			token = uuid.NewString()
			c.SetCookie(CartCookieName, token, 30*24*3600, "/", "", false, true)
		}
		c.Set("cart_token", token)

		c.Next()
	}
}

// AuthRequired rejects requests without an authenticated user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired rejects authenticated non-admins with 403.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		if isAdmin, _ := c.Get("is_admin"); isAdmin != true {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
