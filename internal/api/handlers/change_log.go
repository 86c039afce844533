package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"houndtrack/internal/api/middleware"
	"houndtrack/internal/models"
	"houndtrack/internal/permission"
	"houndtrack/internal/repository"

	"github.com/gin-gonic/gin"
)

// ChangeLogHandler serves the audit trail. ChangeLog is a view-only
// entity: All sees everything, Self sees only changes made by the
// session user.
type ChangeLogHandler struct {
	changeLogRepo repository.ChangeLogRepository
}

// NewChangeLogHandler creates a new change log handler.
func NewChangeLogHandler(changeLogRepo repository.ChangeLogRepository) *ChangeLogHandler {
	return &ChangeLogHandler{changeLogRepo: changeLogRepo}
}

// List godoc
// @Summary List change log entries
// @Tags change_log
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response "Not signed in"
// @Failure 403 {object} models.Response
// @Router /api/change_log/get [get]
func (h *ChangeLogHandler) List(c *gin.Context) {
	role := middleware.RoleFromContext(c)
	user := middleware.UserFromContext(c)
	if role == nil || user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrResponse(models.NotSignedInError))
		return
	}

	var (
		logs []models.ChangeLog
		err  error
	)
	switch role.Grants.View("ChangeLog") {
	case permission.All:
		logs, err = h.changeLogRepo.List(c.Request.Context())
	case permission.Self:
		logs, err = h.changeLogRepo.ListByUser(c.Request.Context(), user.PersonID)
	default:
		c.JSON(http.StatusForbidden, models.ErrResponse("Not allowed to view change logs"))
		return
	}
	if err != nil {
		log.Printf("Error listing change logs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to list change logs"))
		return
	}
	if logs == nil {
		logs = []models.ChangeLog{}
	}
	c.JSON(http.StatusOK, models.OKResponse(logs))
}

// Get godoc
// @Summary Get one change log entry
// @Tags change_log
// @Produce json
// @Param id path int true "Change log ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.Response "Self scope on someone else's change"
// @Failure 404 {object} models.Response
// @Router /api/change_log/get/{id} [get]
func (h *ChangeLogHandler) Get(c *gin.Context) {
	role := middleware.RoleFromContext(c)
	user := middleware.UserFromContext(c)
	if role == nil || user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrResponse(models.NotSignedInError))
		return
	}
	if role.Grants.View("ChangeLog") == permission.None {
		c.JSON(http.StatusForbidden, models.ErrResponse("Not allowed to view change logs"))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrResponse("invalid change log id"))
		return
	}

	entry, err := h.changeLogRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("Change log does not exist"))
			return
		}
		log.Printf("Error getting change log: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get change log"))
		return
	}

	if role.Grants.View("ChangeLog") == permission.Self {
		if entry.ChangedBy == nil || *entry.ChangedBy != user.PersonID {
			c.JSON(http.StatusForbidden, models.ErrResponse("Not allowed to view this change log"))
			return
		}
	}

	c.JSON(http.StatusOK, models.OKResponse(entry))
}
