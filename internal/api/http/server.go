package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pmsuite/pathregistry/internal/api/middleware"
	"github.com/pmsuite/pathregistry/internal/diagnostics"
	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/infrastructure/monitoring"
	"github.com/pmsuite/pathregistry/internal/persist"
	"github.com/pmsuite/pathregistry/internal/registry"
)

// Server exposes one registry over HTTP for the operator panels.
type Server struct {
	reg      *registry.Registry
	checker  *diagnostics.Checker
	repairer *diagnostics.Repairer
	reporter *diagnostics.Reporter
	store    *persist.Store
	metrics  *monitoring.Metrics
	log      *logging.Logger
	engine   *gin.Engine
}

// Deps carries the collaborators a server needs. Metrics may be nil.
type Deps struct {
	Registry *registry.Registry
	Checker  *diagnostics.Checker
	Repairer *diagnostics.Repairer
	Reporter *diagnostics.Reporter
	Store    *persist.Store
	Metrics  *monitoring.Metrics
	Logger   *logging.Logger
}

// NewServer builds the panel API server.
func NewServer(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	s := &Server{
		reg:      deps.Registry,
		checker:  deps.Checker,
		repairer: deps.Repairer,
		reporter: deps.Reporter,
		store:    deps.Store,
		metrics:  deps.Metrics,
		log:      log,
		engine:   engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)
	s.engine.GET("/paths", s.listPaths)
	s.engine.GET("/paths/:key", s.getPath)
	s.engine.POST("/paths/:key", s.registerPath)
	s.engine.POST("/paths/:key/ensure", s.ensureDirectory)
	s.engine.GET("/diagnose", s.diagnose)
	s.engine.POST("/repair", s.repair)
	s.engine.GET("/report", s.report)
	s.engine.POST("/export", s.exportSnapshot)
	s.engine.POST("/import", s.importSnapshot)

	if s.metrics != nil {
		handler := promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})
		s.engine.GET("/metrics", gin.WrapH(handler))
	}
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
