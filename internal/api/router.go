package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/photogram/photogram-api/internal/api/handler"
	"github.com/photogram/photogram-api/internal/api/middleware"
	"github.com/photogram/photogram-api/internal/core/ports"
)

const maxBodySize = "16M"

// Dependencies are the services and probes the router exposes.
type Dependencies struct {
	SignUp    ports.SignUpService
	Auth      ports.AuthService
	Posts     ports.PostService
	Usernames ports.UsernameChecker
	Reactions handler.ReactionQueue
	Probes    map[string]handler.PingFunc
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(maxBodySize))
	e.Use(echoprometheus.NewMiddleware("photogram"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.SignUp, deps.Auth)
	signUpHandler := handler.NewSignUpHandler(deps.SignUp)
	userHandler := handler.NewUserHandler(deps.Usernames, deps.Posts)
	postHandler := handler.NewPostHandler(deps.Posts, deps.Reactions)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Sign-up form ---
	v1 := e.Group("/v1")
	v1.POST("/signup", signUpHandler.Start)
	v1.GET("/signup/:id", signUpHandler.Get)
	v1.PUT("/signup/:id/fields/:field", signUpHandler.Change)
	v1.POST("/signup/:id/fields/:field/blur", signUpHandler.Blur)
	v1.POST("/signup/:id/submit", signUpHandler.Submit)
	v1.GET("/users/availability", userHandler.Availability)

	// --- Authenticated writes ---
	authed := v1.Group("", authMiddleware)
	authed.POST("/media", postHandler.UploadMedia)
	authed.POST("/posts", postHandler.CreatePost)
	authed.POST("/posts/:post_id/comments", postHandler.CreateComment)
	authed.PUT("/posts/:post_id/like", postHandler.Like)
	authed.DELETE("/posts/:post_id/like", postHandler.Unlike)
	authed.PUT("/posts/:post_id/save", postHandler.Save)
	authed.DELETE("/posts/:post_id/save", postHandler.Unsave)

	self := authed.Group("/users/:user_id", middleware.RequireSelf("user_id"))
	self.PUT("", userHandler.EditProfile)
	self.PUT("/avatar", userHandler.EditAvatar)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
