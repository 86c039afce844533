package handlers

import (
	"log"
	"net/http"
	"strings"

	"houndtrack/internal/models"
	"houndtrack/internal/repository"

	"github.com/gin-gonic/gin"
)

// ContactHandler accepts public contact form submissions and lets the
// secretary browse them. Messages are stored only; nothing is mailed.
type ContactHandler struct {
	contactRepo repository.ContactRepository
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactRepo repository.ContactRepository) *ContactHandler {
	return &ContactHandler{contactRepo: contactRepo}
}

// Submit godoc
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param message body models.ContactRequest true "Contact message"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.Response
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("name, email, subject and message are required"))
		return
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := h.contactRepo.Create(c.Request.Context(), msg); err != nil {
		log.Printf("Error storing contact message: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to submit message"))
		return
	}

	c.JSON(http.StatusCreated, models.Response{OK: true})
}

// List godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response "Not signed in"
// @Router /api/contact/list [get]
func (h *ContactHandler) List(c *gin.Context) {
	msgs, err := h.contactRepo.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing contact messages: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to list messages"))
		return
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	c.JSON(http.StatusOK, models.OKResponse(msgs))
}
