package graph

import (
	"net/http"

	"feedhub/social-api/security"
	"feedhub/social-api/store"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// NewHandler returns the gin handler for POST /graphql. Failures ride the
// operation's error list, the HTTP status stays 200 unless the request
// itself is unreadable
func NewHandler(creds *store.Credentials, posts *store.Posts, tokens *security.Tokens) gin.HandlerFunc {
	schema, err := NewSchema(creds, posts, tokens)
	if err != nil {
		// A schema that doesn't build is a programming error, not a
		// runtime condition
		panic(err)
	}

	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message":   "Invalid GraphQL request body",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request.Context(),
		})

		if len(result.Errors) > 0 {
			zap.L().Debug("GraphQL operation returned errors",
				zap.String("requestID", c.GetString("requestID")),
				zap.Any("errors", result.Errors))
		}

		c.JSON(http.StatusOK, result)
	}
}
