package handler

import (
	"net/http"
	"strings"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// trim drops surrounding whitespace so the email rule sees the address the
// account will be stored under. Passwords are taken verbatim.
func (r *registerRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
}

// AccountHandler serves registration and login.
type AccountHandler struct {
	uc       usecase.AccountUsecase
	sessions *middleware.SessionMiddleware
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, sessions *middleware.SessionMiddleware) *AccountHandler {
	return &AccountHandler{
		uc:       uc,
		sessions: sessions,
	}
}

// Register handles POST /register.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewIdentity(output.Identity))
}

// Login handles POST /login. The session travels only in the cookie.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.sessions.SetSessionCookie(c, output.Token, output.Session)

	return c.JSON(http.StatusOK, response.Login{
		UserID: output.Identity.ID,
		Name:   output.Identity.Name,
	})
}
