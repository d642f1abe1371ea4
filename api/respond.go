package api

import (
	"errors"

	"feedhub/social-api/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fail translates an operation error into the JSON error shape. Internal
// causes are logged here and never leak into the response body
func (a *API) fail(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Wrap(err, "Internal server error")
	}

	if ae.Kind == apperr.Internal {
		zap.L().Error("Request failed", zap.String("requestID", requestID), zap.Error(ae.Err))
	}

	body := gin.H{
		"message":   ae.Message,
		"requestID": requestID,
	}
	if len(ae.Fields) > 0 {
		body["data"] = ae.Fields
	}

	c.AbortWithStatusJSON(ae.Status(), body)
}
