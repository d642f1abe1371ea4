package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) PostDelete(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	id, ok := a.postID(c)
	if !ok {
		return
	}

	if err := a.Posts.Delete(id, userID); err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Post deleted",
		"requestID": c.GetString("requestID"),
	})
}
