package controllers

import (
	"net/http"

	"socialstream/auth"
	"socialstream/models"
	"socialstream/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// SocialController owns the follow-graph routes.
type SocialController struct {
	graphService services.GraphService
}

// NewSocialController creates a SocialController instance
func NewSocialController(graphService services.GraphService) *SocialController {
	return &SocialController{graphService: graphService}
}

// UserListResponse wraps a set of users from a graph query.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// RegisterRoutes sets up the follow-graph routes on the shared WebService.
func (ctl *SocialController) RegisterRoutes(ws *restful.WebService) {
	ws.Route(ws.GET("/follow/{username}").Filter(auth.AuthFilter()).To(ctl.followHandler).
		Doc("Follow a user; following someone already followed is a no-op").
		Param(ws.PathParameter("username", "Username, matched case-insensitively").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"social"}).
		Writes(UserResponse{}).
		Returns(http.StatusOK, "Now following", UserResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.GET("/unfollow/{username}").Filter(auth.AuthFilter()).To(ctl.unfollowHandler).
		Doc("Unfollow a user; unfollowing someone not followed is a no-op").
		Param(ws.PathParameter("username", "Username, matched case-insensitively").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"social"}).
		Writes(UserResponse{}).
		Returns(http.StatusOK, "No longer following", UserResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.GET("/users/{username}/following").To(ctl.followingHandler).
		Doc("Users this user follows").
		Param(ws.PathParameter("username", "Username, matched case-insensitively").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"social"}).
		Writes(UserListResponse{}).
		Returns(http.StatusOK, "Following", UserListResponse{}).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.GET("/users/{username}/followers").To(ctl.followersHandler).
		Doc("Users following this user").
		Param(ws.PathParameter("username", "Username, matched case-insensitively").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"social"}).
		Writes(UserListResponse{}).
		Returns(http.StatusOK, "Followers", UserListResponse{}).
		Returns(http.StatusNotFound, "User not found", nil))
}

// followHandler (Handles GET /follow/{username})
func (ctl *SocialController) followHandler(request *restful.Request, response *restful.Response) {
	userID, ok := getRequestingUserID(request)
	if !ok {
		writeUnauthorized(response)
		return
	}

	target, err := ctl.graphService.Follow(userID, request.PathParameter("username"))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, mapModelToUserResponse(target), restful.MIME_JSON)
}

// unfollowHandler (Handles GET /unfollow/{username})
func (ctl *SocialController) unfollowHandler(request *restful.Request, response *restful.Response) {
	userID, ok := getRequestingUserID(request)
	if !ok {
		writeUnauthorized(response)
		return
	}

	target, err := ctl.graphService.Unfollow(userID, request.PathParameter("username"))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, mapModelToUserResponse(target), restful.MIME_JSON)
}

// followingHandler (Handles GET /users/{username}/following)
func (ctl *SocialController) followingHandler(request *restful.Request, response *restful.Response) {
	ctl.listHandler(request, response, ctl.graphService.Following)
}

// followersHandler (Handles GET /users/{username}/followers)
func (ctl *SocialController) followersHandler(request *restful.Request, response *restful.Response) {
	ctl.listHandler(request, response, ctl.graphService.Followers)
}

func (ctl *SocialController) listHandler(request *restful.Request, response *restful.Response, query func(uint) ([]models.User, error)) {
	username := request.PathParameter("username")

	user, err := ctl.graphService.ResolveUsername(username)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	users, err := query(user.ID)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	resp := UserListResponse{Users: make([]UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = mapModelToUserResponse(&users[i])
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, resp, restful.MIME_JSON)
}
