package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jusbook/models"
	ai "jusbook/services/intelligence"
	"jusbook/utils"
)

// ChatHandler answers one chat turn.
func ChatHandler(svc ai.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
			return
		}
		if strings.TrimSpace(req.SessionID) == "" {
			req.SessionID = ai.DefaultSessionID
		}

		resp, err := svc.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			logger.Error("Chat turn failed", zap.String("sessionID", req.SessionID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", "")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
