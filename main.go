package main

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"socialstream/auth"
	"socialstream/config"
	"socialstream/controllers"
	"socialstream/database"
	"socialstream/repositories"
	"socialstream/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"go.uber.org/zap"
)

// RequestLogger logs every request with its latency after it completes.
func RequestLogger(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()

		// handle the request
		chain.ProcessFilter(req, resp)

		clientIP, _, _ := net.SplitHostPort(req.Request.RemoteAddr)
		logger.Info("Request",
			zap.String("client_ip", clientIP),
			zap.String("method", req.Request.Method),
			zap.Int("status_code", resp.StatusCode()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("user_agent", req.Request.UserAgent()),
			zap.String("path", req.Request.URL.Path),
		)
	}
}

func main() {
	// Initialize configs
	config.InitConfig()

	var logger *zap.Logger
	switch config.AppConfig.LogLevel {
	case "debug":
		logger, _ = zap.NewDevelopment()
	case "info":
		logger, _ = zap.NewProduction()
	default:
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync() // Make sure the buffer is flushed before the program exits

	auth.SetSigningKey([]byte(config.AppConfig.JwtSecret))

	db := database.InitDB()

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	edgeRepo := repositories.NewRelationshipRepository(db)

	identityService := services.NewIdentityService(userRepo, config.AppConfig.BcryptCost)
	graphService := services.NewGraphService(userRepo, edgeRepo)
	feedService := services.NewFeedService(userRepo, postRepo, config.AppConfig.StreamLimit)

	userController := controllers.NewUserController(identityService)
	feedController := controllers.NewFeedController(feedService)
	socialController := controllers.NewSocialController(graphService)

	// All routes live on one WebService rooted at "/"
	ws := new(restful.WebService)
	ws.Path("/").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	userController.RegisterRoutes(ws)
	feedController.RegisterRoutes(ws)
	socialController.RegisterRoutes(ws)

	container := restful.NewContainer()
	container.Filter(RequestLogger(logger))
	container.Add(ws)

	// Serve the generated OpenAPI document
	apiConfig := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(apiConfig))

	addr := fmt.Sprintf(":%d", config.AppConfig.HTTPPort)
	logger.Info("Starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, container); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Socialstream API",
			Description: "A minimal social-feed service: post messages, follow users, read streams.",
			Version:     "1.0",
		},
	}
}
