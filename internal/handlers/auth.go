package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tshirt-studio-backend/internal/auth"
	"tshirt-studio-backend/internal/database"
	"tshirt-studio-backend/internal/middleware"
	"tshirt-studio-backend/internal/models"
)

type AuthHandler struct {
	users         UserStore
	tokens        *auth.TokenService
	secureCookies bool
}

func NewAuthHandler(users UserStore, tokens *auth.TokenService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// Register godoc
// @Summary     Register a new user
// @Description Creates a user account and opens a session via the auth_token cookie.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body models.RegisterRequest true "Registration payload"
// @Success     200 {object} models.AuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid request body"))
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, models.Error("name, email and password are required"))
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to create account"))
		return
	}

	user, err := h.users.CreateUser(name, email, passwordHash)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, models.Error("email already in use"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Error("failed to create account"))
		return
	}

	h.openSession(c, user)
}

// Login godoc
// @Summary     Log in
// @Description Verifies credentials and opens a session via the auth_token cookie.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body models.LoginRequest true "Login payload"
// @Success     200 {object} models.AuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid request body"))
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, models.Error("email and password are required"))
		return
	}

	user, err := h.users.GetUserByEmail(email)
	if err != nil {
		// Same answer whether the account is missing or the password is
		// wrong, so logins cannot be used to probe for accounts.
		c.JSON(http.StatusUnauthorized, models.Error("invalid email or password"))
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, models.Error("invalid email or password"))
		return
	}

	h.openSession(c, user)
}

// Logout godoc
// @Summary     Log out
// @Description Clears the session cookie.
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.StatusResponse
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, models.StatusResponse{Status: models.StatusSuccess})
}

// Me godoc
// @Summary     Current user
// @Description Returns the user identified by the session cookie.
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.AuthResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.Error("authentication required"))
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid user id"))
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Error("user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Error("failed to load user"))
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Status: models.StatusSuccess,
		Data:   models.AuthData{User: userPayload(user)},
	})
}

func (h *AuthHandler) openSession(c *gin.Context, user *models.User) {
	token, err := h.tokens.Sign(user.ID.String(), user.Email, user.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to open session"))
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token, int(auth.TokenTTL.Seconds()), "/", "", h.secureCookies, true)

	c.JSON(http.StatusOK, models.AuthResponse{
		Status: models.StatusSuccess,
		Data:   models.AuthData{User: userPayload(user)},
	})
}

func userPayload(user *models.User) models.UserPayload {
	return models.UserPayload{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}
