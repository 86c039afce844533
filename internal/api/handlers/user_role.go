package handlers

import (
	"encoding/json"
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

// UserRoleHandler serves the role storage API consumed by the admin
// console's role editor.
type UserRoleHandler struct {
	roleRepo      repository.RoleRepository
	changeLogRepo repository.ChangeLogRepository
}

// NewUserRoleHandler creates a new user role handler.
func NewUserRoleHandler(roleRepo repository.RoleRepository, changeLogRepo repository.ChangeLogRepository) *UserRoleHandler {
	return &UserRoleHandler{roleRepo: roleRepo, changeLogRepo: changeLogRepo}
}

// List godoc
// @Summary List user roles
// @Description List every role with its per-entity view/edit scopes
// @Tags user_role
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response "Not signed in"
// @Failure 500 {object} models.Response
// @Router /api/user_role/list [get]
func (h *UserRoleHandler) List(c *gin.Context) {
	roles, err := h.roleRepo.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing roles: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to list user roles"))
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}
	c.JSON(http.StatusOK, models.OKResponse(roles))
}

// Get godoc
// @Summary Get one user role
// @Tags user_role
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/user_role/get/{id} [get]
func (h *UserRoleHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrResponse("invalid role id"))
		return
	}

	role, err := h.roleRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("User role does not exist"))
			return
		}
		log.Printf("Error getting role: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get user role"))
		return
	}
	c.JSON(http.StatusOK, models.OKResponse(role))
}

// Register godoc
// @Summary Create a user role
// @Description Create a role from a draft. The title is stored trimmed
// @Description and upper-cased; every edit scope must not exceed the
// @Description matching view scope.
// @Tags user_role
// @Accept json
// @Produce json
// @Param role body models.RoleDraftRequest true "Role draft"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.Response "Validation failure"
// @Failure 401 {object} models.Response "Not signed in"
// @Failure 409 {object} models.Response "Title already exists"
// @Router /api/user_role/register [post]
func (h *UserRoleHandler) Register(c *gin.Context) {
	var req models.RoleDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("invalid request body"))
		return
	}

	if verr := permission.Validate(req.Draft); verr != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse(verr.Error()))
		return
	}

	user := middleware.UserFromContext(c)
	role := &models.Role{
		Title:  permission.NormalizeTitle(req.Draft.Title),
		Grants: req.Draft.Grants.Clone(),
	}
	if user != nil {
		role.LastEditedBy = &user.PersonID
	}

	if err := h.roleRepo.Create(c.Request.Context(), role); err != nil {
		if errors.Is(err, repository.ErrRoleExists) {
			c.JSON(http.StatusConflict, models.ErrResponse("User role already exists"))
			return
		}
		log.Printf("Error creating role: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to create user role"))
		return
	}

	h.logChange(c, models.ChangeOpInsert, role, nil)
	c.JSON(http.StatusCreated, models.OKResponse(role))
}

// Edit godoc
// @Summary Update a user role
// @Tags user_role
// @Accept json
// @Produce json
// @Param role body models.EditRoleRequest true "Role id plus draft"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response "Validation failure or protected role"
// @Failure 401 {object} models.Response "Not signed in"
// @Failure 404 {object} models.Response "Unknown role id"
// @Router /api/user_role/edit [post]
func (h *UserRoleHandler) Edit(c *gin.Context) {
	var req models.EditRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("invalid request body"))
		return
	}
	if req.RoleID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrResponse("Role ID is required"))
		return
	}

	if verr := permission.Validate(req.Draft); verr != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse(verr.Error()))
		return
	}

	before, err := h.roleRepo.GetByID(c.Request.Context(), req.RoleID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("User role does not exist"))
			return
		}
		log.Printf("Error getting role: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get user role"))
		return
	}

	user := middleware.UserFromContext(c)
	role := &models.Role{
		ID:     req.RoleID,
		Title:  permission.NormalizeTitle(req.Draft.Title),
		Grants: req.Draft.Grants.Clone(),
	}
	if user != nil {
		role.LastEditedBy = &user.PersonID
	}

	if err := h.roleRepo.Update(c.Request.Context(), role); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleNotFound):
			c.JSON(http.StatusNotFound, models.ErrResponse("User role does not exist"))
		case errors.Is(err, repository.ErrProtectedRole):
			c.JSON(http.StatusBadRequest, models.ErrResponse("cannot modify protected role"))
		case errors.Is(err, repository.ErrRoleExists):
			c.JSON(http.StatusConflict, models.ErrResponse("User role already exists"))
		default:
			log.Printf("Error updating role: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to update user role"))
		}
		return
	}

	h.logChange(c, models.ChangeOpUpdate, role, before)
	c.JSON(http.StatusOK, models.OKResponse(role))
}

// Delete godoc
// @Summary Delete a user role
// @Tags user_role
// @Accept json
// @Produce json
// @Param role body models.DeleteRoleRequest true "Role id with confirm flag"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response "Protected or in-use role"
// @Failure 401 {object} models.Response "Not signed in"
// @Failure 404 {object} models.Response "Unknown role id"
// @Router /api/user_role/delete [post]
func (h *UserRoleHandler) Delete(c *gin.Context) {
	var req models.DeleteRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("Role ID is required"))
		return
	}

	before, err := h.roleRepo.GetByID(c.Request.Context(), req.RoleID)
	if err != nil && !errors.Is(err, repository.ErrRoleNotFound) {
		log.Printf("Error getting role: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get user role"))
		return
	}

	if err := h.roleRepo.Delete(c.Request.Context(), req.RoleID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleNotFound):
			c.JSON(http.StatusNotFound, models.ErrResponse("User role does not exist"))
		case errors.Is(err, repository.ErrProtectedRole):
			c.JSON(http.StatusBadRequest, models.ErrResponse("cannot delete protected role"))
		case errors.Is(err, repository.ErrRoleInUse):
			c.JSON(http.StatusBadRequest, models.ErrResponse("cannot delete role with assigned users"))
		default:
			log.Printf("Error deleting role: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to delete user role"))
		}
		return
	}

	h.logChange(c, models.ChangeOpDelete, nil, before)
	c.JSON(http.StatusOK, models.Response{OK: true})
}

// logChange records the mutation in the audit trail. Audit failures
// are logged, never surfaced to the caller.
func (h *UserRoleHandler) logChange(c *gin.Context, op models.ChangeOperation, after, before *models.Role) {
	entry := &models.CreateChangeLogRequest{
		ChangedTable: "user_role",
		Operation:    op,
		Source:       "api",
	}
	if user := middleware.UserFromContext(c); user != nil {
		entry.ChangedBy = &user.PersonID
	}
	if after != nil {
		entry.RecordPK = strconv.Itoa(after.ID)
		if data, err := json.Marshal(after); err == nil {
			s := string(data)
			entry.AfterData = &s
		}
	}
	if before != nil {
		if entry.RecordPK == "" {
			entry.RecordPK = strconv.Itoa(before.ID)
		}
		if data, err := json.Marshal(before); err == nil {
			s := string(data)
			entry.BeforeData = &s
		}
	}
	if err := h.changeLogRepo.Create(c.Request.Context(), entry); err != nil {
		log.Printf("Error logging role %s: %v", op, err)
	}
}
