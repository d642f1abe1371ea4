package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImageUpload stores a replacement image ahead of a post update. When the
// caller names the path it replaces, that file is retired right away
func (a *API) ImageUpload(c *gin.Context) {
	requestID := c.GetString("requestID")

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message":   "No file provided",
			"requestID": requestID,
		})
		return
	}

	key, err := a.Images.Accept(fh)
	if err != nil {
		a.fail(c, err)
		return
	}

	if oldPath := c.PostForm("oldPath"); oldPath != "" {
		a.Images.Retire(oldPath)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "File stored",
		"filePath":  key,
		"requestID": requestID,
	})
}
