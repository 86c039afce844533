package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"houndtrack/internal/api/middleware"
	"houndtrack/internal/models"
	"houndtrack/internal/repository"

	"github.com/gin-gonic/gin"
)

// NewsHandler serves the public news feed and its admin mutations.
type NewsHandler struct {
	newsRepo      repository.NewsRepository
	changeLogRepo repository.ChangeLogRepository
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(newsRepo repository.NewsRepository, changeLogRepo repository.ChangeLogRepository) *NewsHandler {
	return &NewsHandler{newsRepo: newsRepo, changeLogRepo: changeLogRepo}
}

// List godoc
// @Summary List news
// @Tags news
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/news [get]
func (h *NewsHandler) List(c *gin.Context) {
	items, err := h.newsRepo.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing news: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to list news"))
		return
	}
	if items == nil {
		items = []models.News{}
	}
	c.JSON(http.StatusOK, models.OKResponse(items))
}

// Get godoc
// @Summary Get one news item
// @Tags news
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/news/{id} [get]
func (h *NewsHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrResponse("invalid news id"))
		return
	}

	item, err := h.newsRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("News item not found"))
			return
		}
		log.Printf("Error getting news: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get news"))
		return
	}
	c.JSON(http.StatusOK, models.OKResponse(item))
}

// Create godoc
// @Summary Create a news item
// @Tags news
// @Accept json
// @Produce json
// @Param item body models.CreateNewsRequest true "News item"
// @Success 201 {object} models.Response
// @Failure 401 {object} models.Response "Not signed in"
// @Failure 403 {object} models.Response
// @Router /api/news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("title and content are required"))
		return
	}

	user := middleware.UserFromContext(c)
	item := &models.News{
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
	}
	if user != nil {
		item.AuthorID = &user.PersonID
		item.LastEditedBy = &user.PersonID
	}

	if err := h.newsRepo.Create(c.Request.Context(), item); err != nil {
		log.Printf("Error creating news: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to create news"))
		return
	}

	h.logChange(c, models.ChangeOpInsert, item, nil)
	c.JSON(http.StatusCreated, models.OKResponse(item))
}

// Edit godoc
// @Summary Update a news item
// @Tags news
// @Accept json
// @Produce json
// @Param item body models.EditNewsRequest true "News item"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/news/edit [post]
func (h *NewsHandler) Edit(c *gin.Context) {
	var req models.EditNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("id, title and content are required"))
		return
	}

	before, err := h.newsRepo.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("News item not found"))
			return
		}
		log.Printf("Error getting news: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get news"))
		return
	}

	user := middleware.UserFromContext(c)
	item := &models.News{
		ID:       req.ID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		AuthorID: before.AuthorID,
	}
	if user != nil {
		item.LastEditedBy = &user.PersonID
	}

	if err := h.newsRepo.Update(c.Request.Context(), item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("News item not found"))
			return
		}
		log.Printf("Error updating news: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to update news"))
		return
	}

	h.logChange(c, models.ChangeOpUpdate, item, before)
	c.JSON(http.StatusOK, models.OKResponse(item))
}

// Delete godoc
// @Summary Delete a news item
// @Tags news
// @Accept json
// @Produce json
// @Param item body models.DeleteNewsRequest true "News id"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/news/delete [post]
func (h *NewsHandler) Delete(c *gin.Context) {
	var req models.DeleteNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("id is required"))
		return
	}

	before, err := h.newsRepo.GetByID(c.Request.Context(), req.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Error getting news: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to get news"))
		return
	}

	if err := h.newsRepo.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrResponse("News item not found"))
			return
		}
		log.Printf("Error deleting news: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to delete news"))
		return
	}

	h.logChange(c, models.ChangeOpDelete, nil, before)
	c.JSON(http.StatusOK, models.Response{OK: true})
}

func (h *NewsHandler) logChange(c *gin.Context, op models.ChangeOperation, after, before *models.News) {
	entry := &models.CreateChangeLogRequest{
		ChangedTable: "news",
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
		log.Printf("Error logging news %s: %v", op, err)
	}
}
