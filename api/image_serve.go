package api

import (
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageServe streams a stored image back, whichever backend holds it
func (a *API) ImageServe(c *gin.Context) {
	requestID := c.GetString("requestID")

	name := c.Param("name")

	f, err := a.Images.Store.Open(name)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   "Image not found",
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}

	c.Header("Content-Type", ct)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, f); err != nil {
		zap.L().Warn("Failed to stream image", zap.String("name", name), zap.Error(err))
	}
}
