package handlers

import (
	"errors"
	"log"
	"net/http"

	"houndtrack/internal/api/middleware"
	"houndtrack/internal/auth"
	"houndtrack/internal/config"
	"houndtrack/internal/models"
	"houndtrack/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves sign-in, sign-out and the current-user lookup.
type AuthHandler struct {
	personRepo  repository.PersonRepository
	roleRepo    repository.RoleRepository
	authService *auth.Service
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(personRepo repository.PersonRepository, roleRepo repository.RoleRepository, authService *auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		personRepo:  personRepo,
		roleRepo:    roleRepo,
		authService: authService,
		cfg:         cfg,
	}
}

// Login godoc
// @Summary Sign in
// @Description Verify credentials and set the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Email and password"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response "Bad credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrResponse("email and password are required"))
		return
	}

	person, err := h.personRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrResponse(auth.ErrBadCredentials.Error()))
			return
		}
		log.Printf("Error looking up person: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to sign in"))
		return
	}

	if err := h.authService.CheckPassword(person.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrResponse(auth.ErrBadCredentials.Error()))
		return
	}

	// The account's role must still exist for the session to mean
	// anything.
	if _, err := h.roleRepo.GetByTitle(c.Request.Context(), person.SystemRole); err != nil {
		log.Printf("Error resolving role %q: %v", person.SystemRole, err)
		c.JSON(http.StatusUnauthorized, models.ErrResponse(auth.ErrBadCredentials.Error()))
		return
	}

	user := models.SessionUser{
		PersonID:   person.PersonID,
		FirstName:  person.FirstName,
		LastName:   person.LastName,
		SystemRole: person.SystemRole,
	}
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		log.Printf("Error minting session token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrResponse("failed to sign in"))
		return
	}

	if err := h.personRepo.TouchLastLogin(c.Request.Context(), person.PersonID); err != nil {
		log.Printf("Error touching last login: %v", err)
	}

	c.SetCookie(auth.SessionCookie, token,
		int(h.cfg.Auth.SessionDuration.Seconds()), "/", "", h.cfg.Auth.SecureCookies, true)
	c.JSON(http.StatusOK, models.OKResponse(user))
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.cfg.Auth.SecureCookies, true)
	c.JSON(http.StatusOK, models.Response{OK: true})
}

// Me godoc
// @Summary Current user
// @Description Return the signed-in session user and their role.
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response "Not signed in"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.UserFromContext(c)
	role := middleware.RoleFromContext(c)
	if user == nil || role == nil {
		c.JSON(http.StatusUnauthorized, models.ErrResponse(models.NotSignedInError))
		return
	}
	c.JSON(http.StatusOK, models.OKResponse(gin.H{
		"user": user,
		"role": role,
	}))
}
