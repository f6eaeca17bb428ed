package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	authsvc "storefront-api/internal/service/auth"
)

const identityKey = "identity"

// authUser requires a valid bearer token carrying a user identity and
// stores it in the request context.
func authUser(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := verifyHeader(c, svc)
		if !ok {
			return
		}
		if ident.UserID == "" {
			// Administrator tokens carry no shopper identity; cart and
			// order operations need one.
			abortUnauthorized(c, "Not Authorized, Login Again")
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// authAdmin requires a valid bearer token carrying the administrator role.
func authAdmin(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := verifyHeader(c, svc)
		if !ok {
			return
		}
		if ident.Role != domain.RoleAdmin {
			abortUnauthorized(c, "Not Authorized")
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func verifyHeader(c *gin.Context, svc authService) (*authsvc.Identity, bool) {
	token := c.GetHeader("token")
	if token == "" {
		abortUnauthorized(c, "Not Authorized, Login Again")
		return nil, false
	}
	ident, err := svc.VerifyCredential(c.Request.Context(), token)
	if err != nil {
		abortUnauthorized(c, "Invalid Token")
		return nil, false
	}
	return ident, true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
}

func identityFrom(c *gin.Context) *authsvc.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*authsvc.Identity); ok {
			return ident
		}
	}
	return nil
}
