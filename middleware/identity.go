package middleware

import (
	"errors"
	"net/http"

	"clinicdesk/services/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorUserIDKey is the gin context key holding the acting doctor's user id.
const DoctorUserIDKey = "doctorUserID"

// DoctorIdentityMiddleware resolves the acting doctor for every request in the group.
func DoctorIdentityMiddleware(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		doctorUserID, err := resolver.ResolveDoctorUserID(c.Request.Context(), c.Request)
		if err != nil {
			if !errors.Is(err, identity.ErrNoIdentity) {
				zap.L().Warn("Doctor identity rejected", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Doctor identity required"})
			return
		}
		c.Set(DoctorUserIDKey, doctorUserID)
		c.Next()
	}
}

// DoctorUserID reads the id stored by DoctorIdentityMiddleware.
func DoctorUserID(c *gin.Context) string {
	return c.GetString(DoctorUserIDKey)
}
