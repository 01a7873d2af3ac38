package router

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/service"
)

// Options 路由可选项
type Options struct {
	ServiceName    string
	RequestTimeout time.Duration
	AuthRPS        float64
	AuthBurst      int
	Tracing        bool
	Sentry         bool
	Swagger        bool
}

// Setup 注册中间件与路由
func Setup(h *handler.Handler, tokens service.TokenIssuer, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), gin.Recovery())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}

	r.GET("/health", h.Health)
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// SSE 长连接：不压缩、不设请求超时
	v1.GET("/notifications/stream", h.StreamNotifications)

	api := v1.Group("", gzip.Gzip(gzip.DefaultCompression), middleware.Timeout(opts.RequestTimeout))

	users := api.Group("/users")
	if opts.AuthRPS > 0 {
		users.Use(middleware.NewIPRateLimiter(opts.AuthRPS, opts.AuthBurst).Middleware())
	}
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
	}

	auth := middleware.JWTAuth(tokens)
	posts := api.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.POST("", auth, h.CreatePost)
		posts.GET("/:id", auth, h.GetPost)
		posts.PUT("/:id", auth, h.UpdatePost)
		posts.DELETE("/:id", auth, h.DeletePost)
	}

	return r
}
