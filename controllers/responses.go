package controllers

import (
	"errors"
	"net/http"
	"time"

	"socialstream/models"
	"socialstream/services"

	restful "github.com/emicklei/go-restful/v3"
)

// UserResponse defines the response structure of user information
type UserResponse struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
	IsAdmin  bool      `json:"is_admin"`
}

// PostResponse defines the response structure of a single post
type PostResponse struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// StreamResponse wraps an ordered list of posts, optionally with the
// profile the posts belong to.
type StreamResponse struct {
	User  *UserResponse  `json:"user,omitempty"`
	Posts []PostResponse `json:"posts"`
}

// --- Helpers to map models to responses ---

func mapModelToUserResponse(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		JoinedAt: user.JoinedAt,
		IsAdmin:  user.IsAdmin,
	}
}

func mapModelToPostResponse(post *models.Post) PostResponse {
	if post == nil {
		return PostResponse{}
	}
	return PostResponse{
		ID:        post.ID,
		Author:    post.User.Username,
		UserID:    post.UserID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}
}

func mapPostsToStreamResponse(user *models.User, posts []models.Post) StreamResponse {
	resp := StreamResponse{Posts: make([]PostResponse, len(posts))}
	if user != nil {
		u := mapModelToUserResponse(user)
		resp.User = &u
	}
	for i := range posts {
		resp.Posts[i] = mapModelToPostResponse(&posts[i])
	}
	return resp
}

// getRequestingUserID extracts the user ID set by the AuthFilter.
func getRequestingUserID(request *restful.Request) (uint, bool) {
	userIDAttr := request.Attribute("user_id")
	if userIDAttr == nil {
		return 0, false
	}
	userID, ok := userIDAttr.(uint)
	return userID, ok
}

// handleServiceError translates domain errors to HTTP responses.
func handleServiceError(response *restful.Response, err error) {
	statusCode := http.StatusInternalServerError
	message := "An internal error occurred"

	switch {
	case errors.Is(err, services.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrDuplicateIdentity):
		statusCode = http.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrEmptyPost):
		statusCode = http.StatusBadRequest
		message = err.Error()
	}

	_ = response.WriteHeaderAndJson(statusCode, map[string]string{"message": message}, restful.MIME_JSON)
}

func writeUnauthorized(response *restful.Response) {
	_ = response.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"message": "Unauthorized: Cannot identify requesting user"}, restful.MIME_JSON)
}
