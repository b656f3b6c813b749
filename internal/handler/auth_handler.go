package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zen/internal/auth"
	apperrors "zen/internal/errors"
)

type AuthHandler struct {
	gateway *auth.Gateway
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(gateway *auth.Gateway) *AuthHandler {
	return &AuthHandler{gateway: gateway}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("missing_fields", "Missing fields"))
		return
	}

	if apiErr := h.gateway.Register(c.Request.Context(), req.Username, req.Password); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_credentials", "Invalid credentials"))
		return
	}

	token, apiErr := h.gateway.Login(c.Request.Context(), req.Username, req.Password)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
