package middleware

import (
	"net/http"

	"houndtrack/internal/auth"
	"houndtrack/internal/models"
	"houndtrack/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey = "session_user"
	ctxRoleKey = "session_role"
)

// SessionMiddleware resolves the session cookie into the signed-in
// account and its role.
type SessionMiddleware struct {
	authService *auth.Service
	roleRepo    repository.RoleRepository
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(authService *auth.Service, roleRepo repository.RoleRepository) *SessionMiddleware {
	return &SessionMiddleware{authService: authService, roleRepo: roleRepo}
}

// SignInRequired aborts with the distinguished "Not signed in" 401
// unless the request carries a valid session cookie whose role still
// exists. On success the session user and role are stored on the
// context for the handlers.
func (m *SessionMiddleware) SignInRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			abortNotSignedIn(c)
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil {
			abortNotSignedIn(c)
			return
		}

		role, err := m.roleRepo.GetByTitle(c.Request.Context(), user.SystemRole)
		if err != nil {
			// A session referencing a deleted role is no longer signed in.
			abortNotSignedIn(c)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxRoleKey, role)
		c.Next()
	}
}

func abortNotSignedIn(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrResponse(models.NotSignedInError))
}

// UserFromContext returns the session user set by SignInRequired, or
// nil on unauthenticated routes.
func UserFromContext(c *gin.Context) *models.SessionUser {
	if v, ok := c.Get(ctxUserKey); ok {
		if user, ok := v.(*models.SessionUser); ok {
			return user
		}
	}
	return nil
}

// RoleFromContext returns the session user's role set by
// SignInRequired.
func RoleFromContext(c *gin.Context) *models.Role {
	if v, ok := c.Get(ctxRoleKey); ok {
		if role, ok := v.(*models.Role); ok {
			return role
		}
	}
	return nil
}
