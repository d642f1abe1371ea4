package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (a *API) PostList(c *gin.Context) {
	requestID := c.GetString("requestID")

	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Page is not a valid integer",
			"requestID": requestID,
		})
		return
	}

	posts, total, err := a.Posts.List(page)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Fetched posts",
		"posts":      posts,
		"totalItems": total,
		"requestID":  requestID,
	})
}
