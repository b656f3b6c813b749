package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zen/internal/middleware"
	"zen/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

type startSessionRequest struct {
	ConfigID string `json:"configId"`
}

type distractionRequest struct {
	Text string `json:"text"`
}

type focusInputRequest struct {
	Input string `json:"input"`
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Start(c *gin.Context) {
	user := middleware.Username(c)

	// Starting always succeeds; an absent or unreadable body means the
	// default config.
	var req startSessionRequest
	_ = c.ShouldBindJSON(&req)

	session, apiErr := h.sessionService.Start(c.Request.Context(), user, req.ConfigID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) AddDistraction(c *gin.Context) {
	user := middleware.Username(c)
	sessionID := c.Param("id")

	var req distractionRequest
	_ = c.ShouldBindJSON(&req)

	session, apiErr := h.sessionService.AppendDistraction(c.Request.Context(), user, sessionID, req.Text)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) SaveInput(c *gin.Context) {
	user := middleware.Username(c)
	sessionID := c.Param("id")

	var req focusInputRequest
	_ = c.ShouldBindJSON(&req)

	session, apiErr := h.sessionService.SetFocusInput(c.Request.Context(), user, sessionID, req.Input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, session)
}
