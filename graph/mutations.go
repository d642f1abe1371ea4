package graph

import (
	"feedhub/social-api/apperr"
	"feedhub/social-api/store"
	"feedhub/social-api/validators"

	"github.com/graphql-go/graphql"
)

func createUserField(userType *graphql.Object, input *graphql.InputObject, creds *store.Credentials) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(userType),
		Args: graphql.FieldConfigArgument{
			"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			in, _ := p.Args["userInput"].(map[string]interface{})
			email, _ := in["email"].(string)
			name, _ := in["name"].(string)
			password, _ := in["password"].(string)

			var fields []apperr.FieldError

			if err := validators.EmailValidator(email); err != nil {
				fields = append(fields, apperr.FieldError{Field: "email", Message: err.Error()})
			}

			if name == "" {
				fields = append(fields, apperr.FieldError{Field: "name", Message: "no name provided"})
			}

			if err := validators.PasswordValidator(password); err != nil {
				fields = append(fields, apperr.FieldError{Field: "password", Message: err.Error()})
			}

			if len(fields) > 0 {
				return nil, apperr.Validation(fields)
			}

			user, err := creds.Create(email, name, password)
			if err != nil {
				return nil, err
			}

			return userOut(user), nil
		},
	}
}

func createPostField(postType *graphql.Object, input *graphql.InputObject, posts *store.Posts) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(postType),
		Args: graphql.FieldConfigArgument{
			"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := identity(p)
			if err != nil {
				return nil, err
			}

			in, _ := p.Args["postInput"].(map[string]interface{})
			title, _ := in["title"].(string)
			content, _ := in["content"].(string)
			imageURL, _ := in["imageUrl"].(string)

			post, err := posts.Create(id.UserID, title, content, imageURL)
			if err != nil {
				return nil, err
			}

			return postOut(post), nil
		},
	}
}

func updatePostField(postType *graphql.Object, input *graphql.InputObject, posts *store.Posts) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(postType),
		Args: graphql.FieldConfigArgument{
			"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := identity(p)
			if err != nil {
				return nil, err
			}

			postID, err := parsePostID(p.Args["id"])
			if err != nil {
				return nil, err
			}

			in, _ := p.Args["postInput"].(map[string]interface{})
			title, _ := in["title"].(string)
			content, _ := in["content"].(string)
			imageURL, _ := in["imageUrl"].(string)

			// The query surface has no file transport. The client uploads
			// through PUT /post-image first and passes the stored path here
			post, err := posts.Update(postID, id.UserID, title, content, imageURL)
			if err != nil {
				return nil, err
			}

			return postOut(post), nil
		},
	}
}

func deletePostField(posts *store.Posts) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.Boolean),
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := identity(p)
			if err != nil {
				return nil, err
			}

			postID, err := parsePostID(p.Args["id"])
			if err != nil {
				return nil, err
			}

			if err := posts.Delete(postID, id.UserID); err != nil {
				return nil, err
			}

			return true, nil
		},
	}
}

func updateStatusField(userType *graphql.Object, creds *store.Credentials) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(userType),
		Args: graphql.FieldConfigArgument{
			"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := identity(p)
			if err != nil {
				return nil, err
			}

			status, _ := p.Args["status"].(string)

			if err := creds.SetStatus(id.UserID, status); err != nil {
				return nil, err
			}

			user, err := creds.Get(id.UserID)
			if err != nil {
				return nil, err
			}

			return userOut(user), nil
		},
	}
}
