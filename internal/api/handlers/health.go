package handlers

import (
	"database/sql"
	"net/http"

	"houndtrack/internal/models"

	"github.com/gin-gonic/gin"
)

// Version is stamped at build time.
var Version = "dev"

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary Health check
// @Description Returns the health status of the API and its database
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthStatus
// @Failure 503 {object} models.Response "Service unavailable"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := models.HealthStatus{Status: "healthy", Database: "up", Version: Version}
	if err := h.db.Ping(); err != nil {
		status.Status = "degraded"
		status.Database = "down"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}
