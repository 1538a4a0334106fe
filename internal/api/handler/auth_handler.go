package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/socialnet/friends-api/internal/api/metrics"
	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "sessionid"

type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

// Signup creates a new user account.
//
// @Summary      Register a new account
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /user/api/v1/signup/ [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body!")
	}
	if err := c.Validate(&req); err != nil {
		return respondMessage(c, http.StatusBadRequest, err.Error())
	}
	if !domain.ValidEmail(req.Email) {
		return respondMessage(c, http.StatusBadRequest, "Please enter valid email!")
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return respondMessage(c, http.StatusBadRequest, "Email already registered with another user!")
		}
		return err
	}

	metrics.SignupsTotal.Inc()

	return respond(c, http.StatusCreated, map[string]any{
		"message": "User created successfully!",
		"user":    toUserResponse(user),
	})
}

// Login authenticates a user and establishes a session.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /user/api/v1/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body!")
	}

	email := req.Email
	if email == "" {
		email = req.Username
	}
	if email == "" {
		return respondMessage(c, http.StatusBadRequest, "Please enter email!")
	}
	if req.Password == "" {
		return respondMessage(c, http.StatusBadRequest, "Please enter password!")
	}
	if !domain.ValidEmail(email) {
		return respondMessage(c, http.StatusBadRequest, "Please enter valid email!")
	}

	token, _, err := h.authService.Login(c.Request().Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return respondMessage(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	c.SetCookie(h.sessionCookie(token, h.tokenTTL))

	return respond(c, http.StatusOK, loginResponse{Message: "Login successful", Token: token})
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         user
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /user/api/v1/logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := actorID(c); err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie("", -time.Hour))

	return respondMessage(c, http.StatusOK, "Logout successful")
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
