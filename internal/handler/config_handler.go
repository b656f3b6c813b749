package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "zen/internal/errors"
	"zen/internal/middleware"
	"zen/internal/service"
)

type ConfigHandler struct {
	configService *service.ConfigService
}

type createConfigRequest struct {
	Name                 string `json:"name"`
	FocusMinutes         int    `json:"focusMinutes"`
	ShortBreakMinutes    int    `json:"shortBreakMinutes"`
	LongBreakMinutes     int    `json:"longBreakMinutes"`
	SessionsPerLongBreak int    `json:"sessionsPerLongBreak"`
}

func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

func (h *ConfigHandler) List(c *gin.Context) {
	user := middleware.Username(c)

	configs, apiErr := h.configService.List(c.Request.Context(), user)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (h *ConfigHandler) Create(c *gin.Context) {
	user := middleware.Username(c)

	var req createConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Non-numeric duration input is rejected here rather than stored
		// as a garbage number.
		writeError(c, apperrors.BadRequest("invalid_body", "Invalid request body"))
		return
	}

	cfg, apiErr := h.configService.Create(c.Request.Context(), user, service.CreateConfigInput{
		Name:                 req.Name,
		FocusMinutes:         req.FocusMinutes,
		ShortBreakMinutes:    req.ShortBreakMinutes,
		LongBreakMinutes:     req.LongBreakMinutes,
		SessionsPerLongBreak: req.SessionsPerLongBreak,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigHandler) Update(c *gin.Context) {
	user := middleware.Username(c)
	id := c.Param("id")

	var patch service.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, apperrors.BadRequest("invalid_body", "Invalid request body"))
		return
	}

	cfg, apiErr := h.configService.Update(c.Request.Context(), user, id, patch)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigHandler) Delete(c *gin.Context) {
	user := middleware.Username(c)
	id := c.Param("id")

	if apiErr := h.configService.Delete(c.Request.Context(), user, id); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
