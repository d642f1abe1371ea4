package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.GetString("requestID")

	var data loginBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	user, err := a.Credentials.VerifySecret(data.Email, data.Password)
	if err != nil {
		a.fail(c, err)
		return
	}

	token, err := a.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		zap.L().Error("Failed to sign auth token", zap.String("requestID", requestID), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"userId":    user.ID,
		"requestID": requestID,
	})
}
