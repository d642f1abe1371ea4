package api

import (
	"net/http"

	"feedhub/social-api/apperr"

	"github.com/gin-gonic/gin"
)

func (a *API) PostCreate(c *gin.Context) {
	requestID := c.GetString("requestID")
	userID := c.MustGet("userID").(string)

	title := c.PostForm("title")
	content := c.PostForm("content")

	fh, err := c.FormFile("image")
	if err != nil {
		a.fail(c, apperr.New(apperr.UnsupportedFileType, "No image provided"))
		return
	}

	key, err := a.Images.Accept(fh)
	if err != nil {
		a.fail(c, err)
		return
	}

	post, err := a.Posts.Create(userID, title, content, key)
	if err != nil {
		// The file was already stored, don't leave it orphaned
		a.Images.Retire(key)
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Post created",
		"post":      post,
		"requestID": requestID,
	})
}
