package graph

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"feedhub/social-api/db"
	"feedhub/social-api/middleware"
	"feedhub/social-api/model"
	"feedhub/social-api/security"
	"feedhub/social-api/service"
	"feedhub/social-api/storage"
	"feedhub/social-api/store"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	schema graphql.Schema
	creds  *store.Credentials
	posts  *store.Posts
	mem    *storage.Mem
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	d, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	mem := storage.NewMem()
	creds := store.NewCredentials(d)
	posts := store.NewPosts(d, service.NewImages(mem), 2)
	tokens := security.NewTokens("test-secret", time.Hour)

	schema, err := NewSchema(creds, posts, tokens)
	require.NoError(t, err)

	return &testEnv{schema: schema, creds: creds, posts: posts, mem: mem}
}

func (e *testEnv) exec(query string, vars map[string]interface{}, as *model.User) *graphql.Result {
	ctx := context.Background()

	id := middleware.Identity{}
	if as != nil {
		id = middleware.Identity{IsAuthenticated: true, UserID: as.ID, Email: as.Email}
	}
	ctx = middleware.WithIdentity(ctx, id)

	return graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func (e *testEnv) mustUser(t *testing.T, email string) *model.User {
	t.Helper()

	user, err := e.creds.Create(email, "Test User", "hunter22")
	require.NoError(t, err)
	return user
}

func TestCreateUserMutation(t *testing.T) {
	e := newTestEnv(t)

	result := e.exec(`
		mutation($input: UserInputData!) {
			createUser(userInput: $input) { _id email status }
		}`,
		map[string]interface{}{
			"input": map[string]interface{}{
				"email":    "new@example.com",
				"name":     "New User",
				"password": "hunter22",
			},
		}, nil)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})["createUser"].(map[string]interface{})
	assert.NotEmpty(t, data["_id"])
	assert.Equal(t, "I am new!", data["status"])

	// Duplicate email surfaces on the error list, not as a transport code
	result = e.exec(`
		mutation($input: UserInputData!) {
			createUser(userInput: $input) { _id }
		}`,
		map[string]interface{}{
			"input": map[string]interface{}{
				"email":    "new@example.com",
				"name":     "Imposter",
				"password": "hunter23",
			},
		}, nil)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 409, result.Errors[0].Extensions["status"])
}

func TestLoginQuery(t *testing.T) {
	e := newTestEnv(t)
	e.mustUser(t, "login@example.com")

	result := e.exec(`{ login(email: "login@example.com", password: "hunter22") { token userId } }`, nil, nil)
	require.Empty(t, result.Errors)

	auth := result.Data.(map[string]interface{})["login"].(map[string]interface{})
	assert.NotEmpty(t, auth["token"])

	bad := e.exec(`{ login(email: "login@example.com", password: "wrong") { token userId } }`, nil, nil)
	require.Len(t, bad.Errors, 1)
	assert.Equal(t, 401, bad.Errors[0].Extensions["status"])

	unknown := e.exec(`{ login(email: "nobody@example.com", password: "hunter22") { token userId } }`, nil, nil)
	require.Len(t, unknown.Errors, 1)
	assert.Equal(t, bad.Errors[0].Message, unknown.Errors[0].Message)
}

func TestQueriesRequireAuth(t *testing.T) {
	e := newTestEnv(t)

	for _, query := range []string{
		`{ posts { totalPosts } }`,
		`{ user { _id } }`,
		`mutation { updateStatus(status: "hi") { _id } }`,
	} {
		result := e.exec(query, nil, nil)
		require.NotEmpty(t, result.Errors, "query %s", query)
		assert.Equal(t, "Not authenticated", result.Errors[0].Message)
		assert.Equal(t, 401, result.Errors[0].Extensions["status"])
	}
}

func TestPostLifecycle(t *testing.T) {
	e := newTestEnv(t)
	alice := e.mustUser(t, "alice@example.com")
	bob := e.mustUser(t, "bob@example.com")

	result := e.exec(`
		mutation($input: PostInputData!) {
			createPost(postInput: $input) { _id title creator { name } }
		}`,
		map[string]interface{}{
			"input": map[string]interface{}{
				"title":    "First post",
				"content":  "Hello world",
				"imageUrl": "img.png",
			},
		}, alice)
	require.Empty(t, result.Errors)

	created := result.Data.(map[string]interface{})["createPost"].(map[string]interface{})
	postID := created["_id"].(string)
	assert.Equal(t, "Test User", created["creator"].(map[string]interface{})["name"])

	// Listing
	result = e.exec(`{ posts { totalPosts posts { _id title } } }`, nil, alice)
	require.Empty(t, result.Errors)
	page := result.Data.(map[string]interface{})["posts"].(map[string]interface{})
	assert.Equal(t, 1, page["totalPosts"])

	// Bob can't update Alice's post and can't learn that it exists
	result = e.exec(`
		mutation($id: ID!, $input: PostInputData!) {
			updatePost(id: $id, postInput: $input) { _id }
		}`,
		map[string]interface{}{
			"id": postID,
			"input": map[string]interface{}{
				"title":    "Hijacked",
				"content":  "Not yours",
				"imageUrl": "img.png",
			},
		}, bob)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not find post", result.Errors[0].Message)

	// Alice updates and deletes
	result = e.exec(`
		mutation($id: ID!, $input: PostInputData!) {
			updatePost(id: $id, postInput: $input) { title }
		}`,
		map[string]interface{}{
			"id": postID,
			"input": map[string]interface{}{
				"title":    "Updated title",
				"content":  "Updated body",
				"imageUrl": "img.png",
			},
		}, alice)
	require.Empty(t, result.Errors)

	result = e.exec(`mutation($id: ID!) { deletePost(id: $id) }`,
		map[string]interface{}{"id": postID}, alice)
	require.Empty(t, result.Errors)
	assert.Equal(t, true, result.Data.(map[string]interface{})["deletePost"])

	result = e.exec(`query($id: ID!) { post(id: $id) { _id } }`,
		map[string]interface{}{"id": postID}, alice)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 404, result.Errors[0].Extensions["status"])
}

func TestCreatePostValidationErrors(t *testing.T) {
	e := newTestEnv(t)
	alice := e.mustUser(t, "alice@example.com")

	result := e.exec(`
		mutation($input: PostInputData!) {
			createPost(postInput: $input) { _id }
		}`,
		map[string]interface{}{
			"input": map[string]interface{}{
				"title":    "ab",
				"content":  "1234",
				"imageUrl": "img.png",
			},
		}, alice)
	require.Len(t, result.Errors, 1)

	assert.Equal(t, 422, result.Errors[0].Extensions["status"])
	assert.NotEmpty(t, result.Errors[0].Extensions["data"])
}

func TestUpdateStatusMutation(t *testing.T) {
	e := newTestEnv(t)
	alice := e.mustUser(t, "alice@example.com")

	result := e.exec(`mutation { updateStatus(status: "Shipping it") { status } }`, nil, alice)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})["updateStatus"].(map[string]interface{})
	assert.Equal(t, "Shipping it", data["status"])
}
