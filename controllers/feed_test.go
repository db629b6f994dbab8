package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postAs(t *testing.T, container *restful.Container, token, content string) PostResponse {
	t.Helper()
	body := fmt.Sprintf(`{"content":%q}`, content)
	w := doAuthorized(container, "POST", "/new_post", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func streamContents(t *testing.T, body []byte) []string {
	t.Helper()
	var resp StreamResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	out := make([]string, len(resp.Posts))
	for i, p := range resp.Posts {
		out[i] = p.Content
	}
	return out
}

func TestNewPostHandler(t *testing.T) {
	t.Run("Requires authentication", func(t *testing.T) {
		container := newTestContainer(t)

		w := doJSON(container, "POST", "/new_post", `{"content":"hi"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Creates a post", func(t *testing.T) {
		container := newTestContainer(t)
		register(t, container, "alice", "alice@x.com", "secret")
		token := login(t, container, "alice@x.com", "secret")

		post := postAs(t, container, token, "  hello  ")
		assert.Equal(t, "hello", post.Content)
		assert.Equal(t, "alice", post.Author)
	})

	t.Run("Rejects empty content", func(t *testing.T) {
		container := newTestContainer(t)
		register(t, container, "alice", "alice@x.com", "secret")
		token := login(t, container, "alice@x.com", "secret")

		w := doAuthorized(container, "POST", "/new_post", `{"content":"   "}`, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStreamHandlers(t *testing.T) {
	container := newTestContainer(t)
	register(t, container, "alice", "alice@x.com", "secret")
	register(t, container, "bob", "bob@x.com", "secret")
	aliceToken := login(t, container, "alice@x.com", "secret")
	bobToken := login(t, container, "bob@x.com", "secret")

	postAs(t, container, bobToken, "hello from bob")
	postAs(t, container, aliceToken, "hello from alice")

	t.Run("Stream requires authentication", func(t *testing.T) {
		w := doJSON(container, "GET", "/stream", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Stream reflects the follow graph", func(t *testing.T) {
		// Before following: own posts only
		w := doAuthorized(container, "GET", "/stream", "", aliceToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"hello from alice"}, streamContents(t, w.Body.Bytes()))

		// Follow bob, case-insensitively
		w = doAuthorized(container, "GET", "/follow/BOB", "", aliceToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = doAuthorized(container, "GET", "/stream", "", aliceToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.ElementsMatch(t, []string{"hello from alice", "hello from bob"}, streamContents(t, w.Body.Bytes()))

		// Unfollow and the fresh stream shrinks again
		w = doAuthorized(container, "GET", "/unfollow/bob", "", aliceToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = doAuthorized(container, "GET", "/stream", "", aliceToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"hello from alice"}, streamContents(t, w.Body.Bytes()))
	})

	t.Run("Follow of unknown user is 404", func(t *testing.T) {
		w := doAuthorized(container, "GET", "/follow/nobody", "", aliceToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("User stream", func(t *testing.T) {
		w := doJSON(container, "GET", "/stream/Bob", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp StreamResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.User)
		assert.Equal(t, "bob", resp.User.Username)
		assert.Equal(t, []string{"hello from bob"}, streamContents(t, w.Body.Bytes()))
	})

	t.Run("User stream of unknown user is 404", func(t *testing.T) {
		w := doJSON(container, "GET", "/stream/nobody", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Public index lists everything", func(t *testing.T) {
		w := doJSON(container, "GET", "/", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.ElementsMatch(t, []string{"hello from alice", "hello from bob"}, streamContents(t, w.Body.Bytes()))
	})
}

func TestGetPostHandler(t *testing.T) {
	container := newTestContainer(t)
	register(t, container, "alice", "alice@x.com", "secret")
	token := login(t, container, "alice@x.com", "secret")
	created := postAs(t, container, token, "hello")

	t.Run("Found", func(t *testing.T) {
		w := doJSON(container, "GET", fmt.Sprintf("/post/%d", created.ID), "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp PostResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "hello", resp.Content)
		assert.Equal(t, "alice", resp.Author)
	})

	t.Run("Missing post is 404", func(t *testing.T) {
		w := doJSON(container, "GET", "/post/99999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed ID is 400", func(t *testing.T) {
		w := doJSON(container, "GET", "/post/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFollowListHandlers(t *testing.T) {
	container := newTestContainer(t)
	register(t, container, "alice", "alice@x.com", "secret")
	register(t, container, "bob", "bob@x.com", "secret")
	register(t, container, "carol", "carol@x.com", "secret")
	aliceToken := login(t, container, "alice@x.com", "secret")
	carolToken := login(t, container, "carol@x.com", "secret")

	w := doAuthorized(container, "GET", "/follow/bob", "", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = doAuthorized(container, "GET", "/follow/bob", "", carolToken)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("Followers", func(t *testing.T) {
		w := doJSON(container, "GET", "/users/bob/followers", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp UserListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		names := make([]string, len(resp.Users))
		for i, u := range resp.Users {
			names[i] = u.Username
		}
		assert.ElementsMatch(t, []string{"alice", "carol"}, names)
	})

	t.Run("Following", func(t *testing.T) {
		w := doJSON(container, "GET", "/users/alice/following", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp UserListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 1)
		assert.Equal(t, "bob", resp.Users[0].Username)
	})

	t.Run("Unknown user is 404", func(t *testing.T) {
		w := doJSON(container, "GET", "/users/nobody/followers", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
