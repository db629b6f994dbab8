package controllers

import (
	"net/http"

	"socialstream/auth"
	"socialstream/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// UserController owns the identity routes: register, login, logout.
type UserController struct {
	identityService services.IdentityService
}

// NewUserController creates a UserController instance
func NewUserController(identityService services.IdentityService) *UserController {
	return &UserController{identityService: identityService}
}

// LoginCredentials defines the structure of the login request
type LoginCredentials struct {
	Email    string `json:"email" description:"Email used at registration"`
	Password string `json:"password" description:"Password for login"`
}

// LoginResponse defines the structure of the login response
type LoginResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// RegisterRoutes sets up the identity routes on the shared WebService.
func (ctl *UserController) RegisterRoutes(ws *restful.WebService) {
	ws.Route(ws.POST("/register").To(ctl.createUserHandler).
		Doc("Register a new user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"identity"}).
		Reads(services.CreateUserInput{}).
		Returns(http.StatusCreated, "User created successfully", UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusConflict, "Username or email already exists", nil))

	ws.Route(ws.POST("/login").To(ctl.loginHandler).
		Doc("Log in with email and password").
		Metadata(restfulspec.KeyOpenAPITags, []string{"identity"}).
		Reads(LoginCredentials{}).
		Returns(http.StatusOK, "Logged in; token returned and session cookie set", LoginResponse{}).
		Returns(http.StatusUnauthorized, "Invalid credentials", nil))

	ws.Route(ws.GET("/logout").Filter(auth.AuthFilter()).To(ctl.logoutHandler).
		Doc("Clear the session cookie").
		Metadata(restfulspec.KeyOpenAPITags, []string{"identity"}).
		Returns(http.StatusOK, "Logged out", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil))
}

// createUserHandler (Handles POST /register)
func (ctl *UserController) createUserHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CreateUserInput)
	if err := request.ReadEntity(input); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Username, email and password are required"}, restful.MIME_JSON)
		return
	}
	// Registration never grants the admin flag
	input.IsAdmin = false

	user, err := ctl.identityService.CreateUser(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, mapModelToUserResponse(user), restful.MIME_JSON)
}

// loginHandler (Handles POST /login)
func (ctl *UserController) loginHandler(request *restful.Request, response *restful.Response) {
	creds := new(LoginCredentials)
	if err := request.ReadEntity(creds); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, LoginResponse{Message: "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	if creds.Email == "" || creds.Password == "" {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, LoginResponse{Message: "Email and password are required"}, restful.MIME_JSON)
		return
	}

	user, err := ctl.identityService.VerifyCredentials(creds.Email, creds.Password)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		_ = response.WriteHeaderAndJson(http.StatusInternalServerError, LoginResponse{Message: "Could not generate token"}, restful.MIME_JSON)
		return
	}

	http.SetCookie(response, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	_ = response.WriteHeaderAndJson(http.StatusOK, LoginResponse{Token: token}, restful.MIME_JSON)
}

// logoutHandler (Handles GET /logout)
func (ctl *UserController) logoutHandler(request *restful.Request, response *restful.Response) {
	http.SetCookie(response, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	_ = response.WriteHeaderAndJson(http.StatusOK, map[string]string{"message": "Logged out"}, restful.MIME_JSON)
}
