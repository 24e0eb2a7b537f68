package handlers

import (
	"net/http"

	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest snapshot taken by utils.StartHealthMonitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm ClinicDesk"})
}
