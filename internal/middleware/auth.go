package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lexcontract/lexcontract-api/internal/constants"
	apierrors "github.com/lexcontract/lexcontract-api/internal/errors"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/services"
)

// RequireAuth verifies the bearer token, resolves its subject to a user, and
// enforces account-state policy. Blocked and inactive accounts get 403, not
// 401: the credential itself was fine.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := authService.VerifyToken(token)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.ResolveSubject(claims.Subject)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		switch user.Status {
		case constants.UserStatusInactive:
			apierrors.Forbidden(c, "Su cuenta ha sido desactivada. Contacte al administrador.")
			c.Abort()
			return
		case constants.UserStatusBlocked:
			apierrors.Forbidden(c, "Cuenta bloqueada temporalmente")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin allows only users holding the administrator role. Must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.HasRole(constants.RoleAdmin) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from the context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
