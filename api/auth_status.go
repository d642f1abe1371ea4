package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type statusBody struct {
	Status string `json:"status"`
}

func (a *API) StatusFetch(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	status, err := a.Credentials.GetStatus(userID)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"requestID": c.GetString("requestID"),
	})
}

func (a *API) StatusUpdate(c *gin.Context) {
	requestID := c.GetString("requestID")
	userID := c.MustGet("userID").(string)

	var data statusBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := a.Credentials.SetStatus(userID, data.Status); err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "User status updated",
		"requestID": requestID,
	})
}
