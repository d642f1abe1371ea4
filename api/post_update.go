package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) PostUpdate(c *gin.Context) {
	requestID := c.GetString("requestID")
	userID := c.MustGet("userID").(string)

	id, ok := a.postID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")

	// A new image is optional on update. Clients either attach a file
	// here or upload through PUT /post-image first and pass the stored
	// path as oldPath. Neither present keeps the current image
	newKey := c.PostForm("oldPath")
	uploaded := false
	if fh, err := c.FormFile("image"); err == nil {
		newKey, err = a.Images.Accept(fh)
		if err != nil {
			a.fail(c, err)
			return
		}
		uploaded = true
	}

	post, err := a.Posts.Update(id, userID, title, content, newKey)
	if err != nil {
		// A freshly stored replacement must not be left orphaned. A key
		// passed as oldPath stays, it may still be live
		if uploaded {
			a.Images.Retire(newKey)
		}
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Post updated",
		"post":      post,
		"requestID": requestID,
	})
}
