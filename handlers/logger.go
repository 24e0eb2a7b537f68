package handlers

import (
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request logger set by middleware.RequestLogger, or the global logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
