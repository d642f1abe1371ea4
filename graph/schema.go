// Package graph is the query-style surface over the same stores the REST
// endpoints use
package graph

import (
	"strconv"
	"time"

	"feedhub/social-api/apperr"
	"feedhub/social-api/middleware"
	"feedhub/social-api/model"
	"feedhub/social-api/security"
	"feedhub/social-api/store"

	"github.com/graphql-go/graphql"
)

func notAuthenticated() *apperr.Error {
	return apperr.New(apperr.Unauthenticated, "Not authenticated")
}

// identity pulls the auth-gate result out of the resolver context
func identity(p graphql.ResolveParams) (middleware.Identity, error) {
	id := middleware.IdentityFrom(p.Context)
	if !id.IsAuthenticated {
		return middleware.Identity{}, notAuthenticated()
	}

	return id, nil
}

func userOut(u *model.User) map[string]interface{} {
	return map[string]interface{}{
		"_id":    u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"status": u.Status,
	}
}

func postOut(p *model.Post) map[string]interface{} {
	return map[string]interface{}{
		"_id":       strconv.FormatUint(uint64(p.ID), 10),
		"title":     p.Title,
		"content":   p.Content,
		"imageUrl":  p.ImagePath,
		"creator":   userOut(&p.Author),
		"createdAt": p.CreatedAt.Format(time.RFC3339),
		"updatedAt": p.UpdatedAt.Format(time.RFC3339),
	}
}

func parsePostID(raw interface{}) (uint, error) {
	s, _ := raw.(string)

	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.NotFound, "Could not find post")
	}

	return uint(id), nil
}

// NewSchema builds the executable schema. Resolvers close over the stores
// so both API surfaces share one operation layer
func NewSchema(creds *store.Credentials, posts *store.Posts, tokens *security.Tokens) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"creator":   &graphql.Field{Type: graphql.NewNonNull(userType)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	postPageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostPage",
		Fields: graphql.Fields{
			"posts":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType)))},
			"totalPosts": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)

					user, err := creds.VerifySecret(email, password)
					if err != nil {
						return nil, err
					}

					token, err := tokens.Issue(user.ID, user.Email)
					if err != nil {
						return nil, apperr.Wrap(err, "Internal server error")
					}

					return map[string]interface{}{
						"token":  token,
						"userId": user.ID,
					}, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(postPageType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := identity(p); err != nil {
						return nil, err
					}

					page, _ := p.Args["page"].(int)

					items, total, err := posts.List(page)
					if err != nil {
						return nil, err
					}

					out := make([]interface{}, 0, len(items))
					for i := range items {
						out = append(out, postOut(&items[i]))
					}

					return map[string]interface{}{
						"posts":      out,
						"totalPosts": int(total),
					}, nil
				},
			},
			"post": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := identity(p); err != nil {
						return nil, err
					}

					id, err := parsePostID(p.Args["id"])
					if err != nil {
						return nil, err
					}

					post, err := posts.Get(id)
					if err != nil {
						return nil, err
					}

					return postOut(post), nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, err
					}

					user, err := creds.Get(id.UserID)
					if err != nil {
						return nil, err
					}

					return userOut(user), nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser":   createUserField(userType, userInputType, creds),
			"createPost":   createPostField(postType, postInputType, posts),
			"updatePost":   updatePostField(postType, postInputType, posts),
			"deletePost":   deletePostField(posts),
			"updateStatus": updateStatusField(userType, creds),
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
