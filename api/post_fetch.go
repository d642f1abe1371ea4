package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// postID parses the :postID route parameter. The bool result reports
// whether the request was already answered
func (a *API) postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("postID"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Post ID is not valid",
			"requestID": c.GetString("requestID"),
		})
		return 0, false
	}

	return uint(id), true
}

func (a *API) PostFetch(c *gin.Context) {
	id, ok := a.postID(c)
	if !ok {
		return
	}

	post, err := a.Posts.Get(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Post fetched",
		"post":      post,
		"requestID": c.GetString("requestID"),
	})
}
