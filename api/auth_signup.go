package api

import (
	"net/http"

	"feedhub/social-api/apperr"
	"feedhub/social-api/validators"

	"github.com/gin-gonic/gin"
)

type signupBody struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (a *API) AuthSignup(c *gin.Context) {
	requestID := c.GetString("requestID")

	var data signupBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	var fields []apperr.FieldError

	if err := validators.EmailValidator(data.Email); err != nil {
		fields = append(fields, apperr.FieldError{Field: "email", Message: err.Error()})
	}

	if data.Name == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "no name provided"})
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		fields = append(fields, apperr.FieldError{Field: "password", Message: err.Error()})
	}

	if len(fields) > 0 {
		a.fail(c, apperr.Validation(fields))
		return
	}

	user, err := a.Credentials.Create(data.Email, data.Name, data.Password)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User created",
		"userId":    user.ID,
		"requestID": requestID,
	})
}
