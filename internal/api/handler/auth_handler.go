package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/api/metrics"
	"github.com/ybblog/blog/internal/api/middleware"
	"github.com/ybblog/blog/internal/core/domain"
	"github.com/ybblog/blog/internal/core/ports"
)

const (
	msgRegistered         = "You are now registered and can log in."
	msgLoggedIn           = "You are now logged in."
	msgInvalidCredentials = "Invalid username or password."
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    *cookie.SessionCodec
	flash       *cookie.Flasher
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions *cookie.SessionCodec, flash *cookie.Flasher, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, flash: flash, log: log}
}

// RegisterForm renders the empty registration form.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  formPage
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formPage{page: newPage(c, h.flash, "register")})
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "User registration details"
// @Success      303  {string}  string  "redirect to the next page"
// @Failure      409   {object}  formPage
// @Failure      422   {object}  formPage
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var in ports.RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		form := registerForm{Name: in.Name, Username: in.Username, Email: in.Email}

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusUnprocessableEntity, formPage{
				page:   newPage(c, h.flash, "register"),
				Form:   form,
				Errors: verr.Fields,
			})
		}

		var cerr *domain.ConflictError
		if errors.As(err, &cerr) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return c.JSON(http.StatusConflict, formPage{
				page:   newPage(c, h.flash, "register"),
				Form:   form,
				Errors: map[string]string{cerr.Field: cerr.Error()},
			})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	h.flash.Add(c, cookie.Success, msgRegistered)
	return redirect(c, "/login")
}

// LoginForm renders the login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  formPage
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formPage{page: newPage(c, h.flash, "login")})
}

// Login verifies the credentials and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      303  {string}  string  "redirect to the next page"
// @Failure      429   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			h.flash.Add(c, cookie.Danger, msgInvalidCredentials)
			return redirect(c, "/login")
		}
		return err
	}

	if err := h.sessions.Write(c, sess); err != nil {
		h.log.Error().Err(err).Msg("failed to sign session cookie")
		return err
	}
	middleware.SetSession(c, sess)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.flash.Add(c, cookie.Success, msgLoggedIn)
	return redirect(c, "/")
}

// Logout ends the current session.
//
// @Summary      Logout
// @Tags         auth
// @Success      302  {string}  string  "redirect to /"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.SessionFrom(c); sess != nil {
		if err := h.authService.Logout(c.Request().Context(), sess.Token); err != nil {
			h.log.Error().Err(err).Str("username", sess.Username).Msg("logout: delete session")
		}
	}
	h.sessions.Clear(c)
	return redirect(c, "/")
}
