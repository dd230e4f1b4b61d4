package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/alessioferri/trattoria-app/services"
)

// identityFromContext reads the cart identity resolved by the identity
// middleware: the user id when authenticated, else the anonymous cart token.
func identityFromContext(c *gin.Context) services.Identity {
	if v, exists := c.Get("user_id"); exists {
		if userID, ok := v.(uint); ok {
			return services.Identity{UserID: &userID}
		}
	}
	token, _ := c.Get("cart_token")
	tokenStr, _ := token.(string)
	return services.Identity{Token: tokenStr}
}
