package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/services"
	xhttp "github.com/secsim/phishing-gateway/pkg/http"
)

type AuthService interface {
	Verify(ctx context.Context, username, password string) (*model.User, error)
}

type AuthHandler struct {
	svc AuthService
}

func RegisterAuthRoutes(e *router.Router, h *AuthHandler) {
	e.POST("/login", h.Login)
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{svc: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	user, err := h.svc.Verify(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(ctx, xhttp.StatusUnauthorized, err.Error())
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, loginResponse{Username: user.Username, Role: user.Role})
}
