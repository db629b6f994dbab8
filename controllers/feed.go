package controllers

import (
	"net/http"
	"strconv"

	"socialstream/auth"
	"socialstream/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// FeedController owns the post and stream routes.
type FeedController struct {
	feedService services.FeedService
}

// NewFeedController creates a FeedController instance
func NewFeedController(feedService services.FeedService) *FeedController {
	return &FeedController{feedService: feedService}
}

// NewPostInput defines the body of a post submission.
type NewPostInput struct {
	Content string `json:"content" description:"Post text; surrounding whitespace is trimmed"`
}

// RegisterRoutes sets up the feed routes on the shared WebService.
func (ctl *FeedController) RegisterRoutes(ws *restful.WebService) {
	ws.Route(ws.GET("/").To(ctl.recentPostsHandler).
		Doc("Most recent posts across all users").
		Metadata(restfulspec.KeyOpenAPITags, []string{"feed"}).
		Writes(StreamResponse{}).
		Returns(http.StatusOK, "Recent posts", StreamResponse{}))

	ws.Route(ws.GET("/stream").Filter(auth.AuthFilter()).To(ctl.streamHandler).
		Doc("The caller's stream: own posts plus posts by followed users").
		Param(ws.QueryParameter("limit", "Maximum rows to return (capped)").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"feed"}).
		Writes(StreamResponse{}).
		Returns(http.StatusOK, "Stream", StreamResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil))

	ws.Route(ws.GET("/stream/{username}").To(ctl.userStreamHandler).
		Doc("A single user's own posts").
		Param(ws.PathParameter("username", "Username, matched case-insensitively").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"feed"}).
		Writes(StreamResponse{}).
		Returns(http.StatusOK, "User stream", StreamResponse{}).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.GET("/post/{post-id}").To(ctl.getPostHandler).
		Doc("Get a single post by ID").
		Param(ws.PathParameter("post-id", "Identifier of the post").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"feed"}).
		Writes(PostResponse{}).
		Returns(http.StatusOK, "Post found", PostResponse{}).
		Returns(http.StatusNotFound, "Post not found", nil))

	ws.Route(ws.POST("/new_post").Filter(auth.AuthFilter()).To(ctl.createPostHandler).
		Doc("Create a new post").
		Metadata(restfulspec.KeyOpenAPITags, []string{"feed"}).
		Reads(NewPostInput{}).
		Returns(http.StatusCreated, "Post created", PostResponse{}).
		Returns(http.StatusBadRequest, "Empty content", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil))
}

// recentPostsHandler (Handles GET /)
func (ctl *FeedController) recentPostsHandler(request *restful.Request, response *restful.Response) {
	posts, err := ctl.feedService.RecentPosts(0)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, mapPostsToStreamResponse(nil, posts), restful.MIME_JSON)
}

// streamHandler (Handles GET /stream)
func (ctl *FeedController) streamHandler(request *restful.Request, response *restful.Response) {
	userID, ok := getRequestingUserID(request)
	if !ok {
		writeUnauthorized(response)
		return
	}

	limit, _ := strconv.Atoi(request.QueryParameter("limit"))
	posts, err := ctl.feedService.GetStream(userID, limit)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, mapPostsToStreamResponse(nil, posts), restful.MIME_JSON)
}

// userStreamHandler (Handles GET /stream/{username})
func (ctl *FeedController) userStreamHandler(request *restful.Request, response *restful.Response) {
	username := request.PathParameter("username")

	user, posts, err := ctl.feedService.GetUserStream(username)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, mapPostsToStreamResponse(user, posts), restful.MIME_JSON)
}

// getPostHandler (Handles GET /post/{post-id})
func (ctl *FeedController) getPostHandler(request *restful.Request, response *restful.Response) {
	postIDStr := request.PathParameter("post-id")
	postID, err := strconv.ParseUint(postIDStr, 10, 32)
	if err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid post ID format"}, restful.MIME_JSON)
		return
	}

	post, err := ctl.feedService.GetPost(uint(postID))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, mapModelToPostResponse(post), restful.MIME_JSON)
}

// createPostHandler (Handles POST /new_post)
func (ctl *FeedController) createPostHandler(request *restful.Request, response *restful.Response) {
	userID, ok := getRequestingUserID(request)
	if !ok {
		writeUnauthorized(response)
		return
	}

	input := new(NewPostInput)
	if err := request.ReadEntity(input); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	post, err := ctl.feedService.CreatePost(userID, input.Content)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusCreated, mapModelToPostResponse(post), restful.MIME_JSON)
}
