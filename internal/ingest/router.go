package ingest

import (
	"net/http"
	"time"

	commonmw "acrunner/internal/common/http/middleware"
	"acrunner/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	readTimeout = 15 * time.Second
	idleTimeout = 60 * time.Second
)

// NewRouter wires the listener routes.
func NewRouter(controller *Controller) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(commonmw.TraceContextMiddleware())
	router.Use(commonmw.RequestLogger())

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/", controller.Receive)
	router.GET("/ws", controller.Stream)

	api := router.Group("/api/v1")
	api.GET("/problem", controller.GetProblem)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
	return router
}

// NewHTTPServer builds the listener server. WriteTimeout stays zero so the
// event stream is not cut off.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
	}
}
