package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jusbook/utils"
)

const serviceName = "jusbook-chatbot"

// HealthHandler reports liveness plus the last Redis ping when a Redis backend is in use.
func HealthHandler(c *gin.Context) {
	resp := gin.H{"status": "healthy", "service": serviceName}
	status := utils.GetHealthStatus()
	if status.Redis != nil {
		resp["redis"] = *status.Redis
		resp["checkedAt"] = status.CheckedAt
		if !*status.Redis {
			resp["status"] = "degraded"
		}
	}
	c.JSON(http.StatusOK, resp)
}
