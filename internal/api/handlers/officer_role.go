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

// OfficerRoleHandler serves officer appointments. Under a Self edit
// scope a user may only touch appointments naming themselves.
type OfficerRoleHandler struct {
	officerRepo   repository.OfficerRoleRepository
	changeLogRepo repository.ChangeLogRepository
}

// NewOfficerRoleHandler creates a new officer handler.
func NewOfficerRoleHandler(officerRepo repository.OfficerRoleRepository, changeLogRepo repository.ChangeLogRepository) *OfficerRoleHandler {
	return &OfficerRoleHandler{officerRepo: officerRepo, changeLogRepo: changeLogRepo}
}

// List godoc
// @Summary List officer appointments
// @Tags officer_role
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response "Not signed in"
// @Router /api/officer_role/list [get]
func (h *OfficerRoleHandler) List(c *gin.Context) {
	officers, err := h.officerRepo.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing officers: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to list officer roles"))
		return
	}
	if officers == nil {
		officers = []models.OfficerRole{}
	}
	c.JSON(http.StatusOK, models.OKResponse(officers))
}

// Add godoc
// @Summary Add an officer appointment
// @Tags officer_role
// @Accept json
// @Produce json
// @Param officer body models.AddOfficerRoleRequest true "Appointment"
// @Success 201 {object} models.Response
// @Failure 403 {object} models.Response "Self scope on someone else's record"
// @Router /api/officer_role/add [post]
func (h *OfficerRoleHandler) Add(c *gin.Context) {
	var req models.AddOfficerRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("personId and position are required"))
		return
	}

	user := middleware.UserFromContext(c)
	if !h.mayTouch(c, req.PersonID) {
		c.JSON(http.StatusForbidden, models.ErrResponse("Not allowed to edit officer roles for other people"))
		return
	}

	officer := &models.OfficerRole{
		PersonID:  req.PersonID,
		Position:  req.Position,
		ClubID:    req.ClubID,
		TermStart: req.TermStart,
		TermEnd:   req.TermEnd,
	}
	if user != nil {
		officer.LastEditedBy = &user.PersonID
	}

	if err := h.officerRepo.Create(c.Request.Context(), officer); err != nil {
		log.Printf("Error creating officer: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to create officer role"))
		return
	}

	h.logChange(c, models.ChangeOpInsert, officer, nil)
	c.JSON(http.StatusCreated, models.OKResponse(officer))
}

// Edit godoc
// @Summary Update an officer appointment
// @Tags officer_role
// @Accept json
// @Produce json
// @Param officer body models.EditOfficerRoleRequest true "Appointment"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/officer_role/edit [post]
func (h *OfficerRoleHandler) Edit(c *gin.Context) {
	var req models.EditOfficerRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("id and position are required"))
		return
	}

	before, err := h.officerRepo.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("Officer role does not exist"))
			return
		}
		log.Printf("Error getting officer: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get officer role"))
		return
	}

	if !h.mayTouch(c, before.PersonID) {
		c.JSON(http.StatusForbidden, models.ErrResponse("Not allowed to edit officer roles for other people"))
		return
	}

	user := middleware.UserFromContext(c)
	officer := &models.OfficerRole{
		ID:        req.ID,
		PersonID:  before.PersonID,
		Position:  req.Position,
		ClubID:    req.ClubID,
		TermStart: req.TermStart,
		TermEnd:   req.TermEnd,
	}
	if user != nil {
		officer.LastEditedBy = &user.PersonID
	}

	if err := h.officerRepo.Update(c.Request.Context(), officer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("Officer role does not exist"))
			return
		}
		log.Printf("Error updating officer: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to update officer role"))
		return
	}

	h.logChange(c, models.ChangeOpUpdate, officer, before)
	c.JSON(http.StatusOK, models.OKResponse(officer))
}

// Delete godoc
// @Summary Delete an officer appointment
// @Tags officer_role
// @Accept json
// @Produce json
// @Param officer body models.DeleteOfficerRoleRequest true "Appointment id"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/officer_role/delete [post]
func (h *OfficerRoleHandler) Delete(c *gin.Context) {
	var req models.DeleteOfficerRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("id is required"))
		return
	}

	before, err := h.officerRepo.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("Officer role does not exist"))
			return
		}
		log.Printf("Error getting officer: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get officer role"))
		return
	}

	if !h.mayTouch(c, before.PersonID) {
		c.JSON(http.StatusForbidden, models.ErrResponse("Not allowed to edit officer roles for other people"))
		return
	}

	if err := h.officerRepo.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("Officer role does not exist"))
			return
		}
		log.Printf("Error deleting officer: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to delete officer role"))
		return
	}

	h.logChange(c, models.ChangeOpDelete, nil, before)
	c.JSON(http.StatusOK, models.Response{OK: true})
}

// mayTouch applies the Self/All distinction: All edits anything, Self
// only records naming the session user.
func (h *OfficerRoleHandler) mayTouch(c *gin.Context, personID string) bool {
	role := middleware.RoleFromContext(c)
	user := middleware.UserFromContext(c)
	if role == nil || user == nil {
		return false
	}
	switch role.Grants.Edit("OfficerRole") {
	case permission.All:
		return true
	case permission.Self:
		return user.PersonID == personID
	}
	return false
}

func (h *OfficerRoleHandler) logChange(c *gin.Context, op models.ChangeOperation, after, before *models.OfficerRole) {
	entry := &models.CreateChangeLogRequest{
		ChangedTable: "officer_role",
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
		log.Printf("Error logging officer %s: %v", op, err)
	}
}
