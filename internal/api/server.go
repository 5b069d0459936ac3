package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/signalpost/rosetta/internal/logger"
	"github.com/signalpost/rosetta/internal/translator"
	"github.com/signalpost/rosetta/internal/version"
	"github.com/signalpost/rosetta/internal/webui"
)

// Server exposes the translation service actions over HTTP.
type Server struct {
	service *translator.Service
	log     logger.Logger
}

func NewServer(service *translator.Service, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		service: service,
		log:     log,
	}
}

// Register mounts the action routes, the health probe and the
// playground UI on e.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/actions/translate", s.handleTranslate)
	e.POST("/actions/fill_mask", s.handleFillMask)
	e.GET("/actions/supported_languages", s.handleSupportedLanguages)
	e.POST("/actions/supported_languages", s.handleSupportedLanguages)
	e.GET("/healthz", s.handleHealth)

	ui := http.FileServer(webui.StaticFS())
	serveUI := func(c *echo.Context) error {
		ui.ServeHTTP(c.Response(), c.Request())
		return nil
	}
	e.GET("/", serveUI)
	e.GET("/*", serveUI)
}

func (s *Server) handleHealth(c *echo.Context) error {
	resp := HealthResponse{
		Status:  "ok",
		Version: version.String(),
	}
	if s.service != nil {
		resp.Languages = len(s.service.SupportedLanguages())
	}
	return c.JSON(http.StatusOK, resp)
}
