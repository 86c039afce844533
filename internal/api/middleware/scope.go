package middleware

import (
	"fmt"
	"net/http"

	"houndtrack/internal/models"
	"houndtrack/internal/permission"

	"github.com/gin-gonic/gin"
)

// ViewRequired denies the request when the session role has no view
// access at all for the entity. Self/All distinctions are applied by
// the handler, which knows record ownership.
func ViewRequired(entity string) gin.HandlerFunc {
	return scopeRequired(entity, false, permission.Self)
}

// EditRequired denies the request when the session role has no edit
// access for the entity.
func EditRequired(entity string) gin.HandlerFunc {
	return scopeRequired(entity, true, permission.Self)
}

// EditAllRequired denies the request unless the session role holds the
// full All edit scope for the entity. Bulk operations such as CSV
// imports never run under a Self scope.
func EditAllRequired(entity string) gin.HandlerFunc {
	return scopeRequired(entity, true, permission.All)
}

func scopeRequired(entity string, edit bool, min permission.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFromContext(c)
		if role == nil {
			abortNotSignedIn(c)
			return
		}
		scope := role.Grants.View(entity)
		if edit {
			scope = role.Grants.Edit(entity)
		}
		if permission.Compare(scope, min) < 0 {
			verb := "view"
			if edit {
				verb = "edit"
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.ErrResponse(fmt.Sprintf("Not allowed to %s %s", verb, entity)))
			return
		}
		c.Next()
	}
}
