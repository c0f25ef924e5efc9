package webserver

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/openkiosk/stallpos/config"
	"go.uber.org/zap"
)

// WebServer wraps echo with the two route surfaces of the service: the
// public ordering API and the key-gated admin API.
type WebServer struct {
	cfg   *config.AppConfig
	root  *echo.Echo
	pub   *echo.Group
	admin *echo.Group
}

func NewWebServer(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(zapLogger())

	if cfg.Web.StaticDir != "" {
		if _, err := os.Stat(cfg.Web.StaticDir); err == nil {
			e.Static("/", cfg.Web.StaticDir)
		}
	}

	ws := &WebServer{
		cfg:   cfg,
		root:  e,
		pub:   e.Group(""),
		admin: e.Group("/api/admin", adminKeyGate(cfg.Web.AdminKey)),
	}
	return ws
}

// PubGET registers a public GET route.
func (ws *WebServer) PubGET(path string, h echo.HandlerFunc) {
	ws.pub.GET(path, h)
}

// PubPOST registers a public POST route.
func (ws *WebServer) PubPOST(path string, h echo.HandlerFunc) {
	ws.pub.POST(path, h)
}

// AdminGET registers a GET route behind the admin key gate.
func (ws *WebServer) AdminGET(path string, h echo.HandlerFunc) {
	ws.admin.GET(path, h)
}

// AdminPOST registers a POST route behind the admin key gate.
func (ws *WebServer) AdminPOST(path string, h echo.HandlerFunc) {
	ws.admin.POST(path, h)
}

// Echo exposes the underlying engine (used in handler tests).
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

func (ws *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", ws.cfg.Web.Host, ws.cfg.Web.Port)
	zap.S().Infof("starting web server on %s", addr)
	return ws.root.Start(addr)
}

func (ws *WebServer) Shutdown() error {
	return ws.root.Close()
}

// adminKeyGate checks the shared-secret key query parameter. The key is
// supplied out-of-band to staff; there are no operator accounts.
func adminKeyGate(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" || c.QueryParam("key") != key {
				return c.NoContent(http.StatusUnauthorized)
			}
			return next(c)
		}
	}
}

// zapLogger logs one line per request through the global zap logger.
func zapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return err
		}
	}
}
