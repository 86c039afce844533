package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"houndtrack/internal/api/middleware"
	"houndtrack/internal/importer"
	"houndtrack/internal/models"
	"houndtrack/internal/permission"

	"github.com/gin-gonic/gin"
)

// ImportHandler accepts CSV uploads and returns the import report.
type ImportHandler struct {
	service *importer.Service
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *importer.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

// Run godoc
// @Summary Import a CSV file
// @Description Bulk-load dogs, meets or results from a CSV upload.
// @Description Requires the full All edit scope for the target entity.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param type query string false "Import type" default(dogs)
// @Param mode query string false "insert or update" default(insert)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 401 {object} models.Response "Not signed in"
// @Failure 403 {object} models.Response "Importer requires ALL scope"
// @Router /api/import [post]
func (h *ImportHandler) Run(c *gin.Context) {
	importType := models.ImportType(strings.ToLower(strings.TrimSpace(c.DefaultQuery("type", string(models.ImportDogs)))))
	mode := models.ImportMode(strings.ToLower(strings.TrimSpace(c.DefaultQuery("mode", string(models.ImportModeInsert)))))

	entity, err := importer.EntityFor(importType)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("Invalid import type"))
		return
	}

	// The entity depends on the query string, so the scope check
	// cannot be route middleware.
	role := middleware.RoleFromContext(c)
	if role == nil {
		c.JSON(http.StatusUnauthorized, models.ErrResponse(models.NotSignedInError))
		return
	}
	if role.Grants.Edit(entity) != permission.All {
		c.JSON(http.StatusForbidden, models.ErrResponse("Importer requires ALL scope"))
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("Missing file field 'file'"))
		return
	}
	defer file.Close()

	report, err := h.service.Run(c.Request.Context(), file, importType, mode)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownMode) {
			c.JSON(http.StatusBadRequest, models.ErrResponse(err.Error()))
			return
		}
		log.Printf("Error running import: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, models.Response{OK: true, Data: gin.H{"report": report}})
}

// Types godoc
// @Summary List import types
// @Tags import
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/import/types [get]
func (h *ImportHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, models.OKResponse(gin.H{"importTypes": models.ImportTypes}))
}
