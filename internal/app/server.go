package app

import (
	"html/template"
	"net/http"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/config"
	"github.com/LeandroManna/gimnasio-reservas/internal/controller"
	"github.com/LeandroManna/gimnasio-reservas/web"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewServer builds the gin engine with its middleware chain and wraps it
// in an http.Server with sane timeouts. Write timeout leaves room for
// receipt uploads.
func NewServer(cfg *config.Config, ctrl *controller.Controller, logger *zap.Logger) *http.Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(controller.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 8 << 20

	tmpl := template.Must(template.ParseFS(web.Templates, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	ctrl.RegisterRoutes(router)

	// The availability endpoint is consumed cross-origin by the grid
	// when the frontend is hosted separately.
	handler := cors.Default().Handler(router)

	return &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
