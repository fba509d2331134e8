// Package web serves the bot's HTTP API behind a host allow-list and a
// per-IP request budget.
package web

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Server wraps the Gin engine with the bot's middleware chain.
type Server struct {
	engine  *gin.Engine
	hosts   *regexp.Regexp
	audit   *requestAudit
	limiter *rateLimiter

	mu   sync.Mutex
	srv  *http.Server
}

// RateLimit bounds how many requests one client IP may make per window.
type RateLimit struct {
	Window time.Duration
	Limit  int
}

// DefaultRateLimit allows 100 requests per IP per minute
var DefaultRateLimit = RateLimit{Window: time.Minute, Limit: 100}

var server *Server

// Init initializes the global web server
func Init(webhookURL, allowedHosts string) *Server {
	server = NewServer(webhookURL, allowedHosts, DefaultRateLimit)
	return server
}

// Get returns the global web server
func Get() *Server {
	return server
}

// NewServer creates a new web server. Requests whose Host does not match
// allowedHosts are rejected with 403.
func NewServer(webhookURL, allowedHosts string, limit RateLimit) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:  gin.New(),
		hosts:   compileHosts(allowedHosts),
		audit:   newRequestAudit(webhookURL),
		limiter: newRateLimiter(limit),
	}
	s.engine.Use(gin.Recovery(), s.hostGuard(), s.budget())
	s.setupErrorHandlers()
	return s
}

// compileHosts compiles the allow-list. An invalid pattern allows nothing.
func compileHosts(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		logger.Error(fmt.Sprintf("Patrón de hosts inválido %q: %v", pattern, err), "WebServer")
		return regexp.MustCompile(`$^`)
	}
	return re
}

// Engine exposes the gin engine, mainly for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// hostGuard drops requests for unknown hosts and reports every request
// to the audit webhook.
func (s *Server) hostGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := captureRequest(c)
		allowed := s.hosts.MatchString(c.Request.Host)

		if allowed {
			logger.Info(fmt.Sprintf("[LOG] %s %s", info.Method, info.Path), "WebServer")
		} else {
			logger.Warn(fmt.Sprintf("[LOG] Host rechazado %q: %s %s | %s", c.Request.Host, info.Method, info.Path, info.IP), "WebServer")
		}
		go s.audit.report(info, !allowed)

		if !allowed {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// budget answers 429 once a client IP spends its window's allowance.
func (s *Server) budget() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter.allow(c.ClientIP(), time.Now()) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "Demasiadas solicitudes, por favor intente de nuevo más tarde.",
		})
	}
}

// setupErrorHandlers answers unknown routes and methods with a JSON body
// instead of gin's plain-text defaults.
func (s *Server) setupErrorHandlers() {
	s.engine.HandleMethodNotAllowed = true
	s.engine.NoRoute(jsonError(http.StatusNotFound, "Not Found", "La ruta solicitada no existe."))
	s.engine.NoMethod(jsonError(http.StatusMethodNotAllowed, "Method Not Allowed", "El método HTTP no está permitido para esta ruta."))
}

func jsonError(status int, name, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(status, gin.H{"error": name, "message": message, "status": status})
	}
}

// Start serves on port until Shutdown is called.
func (s *Server) Start(port string) error {
	s.mu.Lock()
	s.srv = &http.Server{Addr: ":" + port, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	srv := s.srv
	s.mu.Unlock()

	logger.Info(fmt.Sprintf("🚀 Servidor escuchando en http://localhost:%s", port), "WebServer")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// StartAsync runs Start in a goroutine and logs a failure to bind.
func (s *Server) StartAsync(port string) {
	go func() {
		if err := s.Start(port); err != nil {
			logger.Error(fmt.Sprintf("Error iniciando el servidor web: %v", err), "WebServer")
		}
	}()
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// expires. It is a no-op before Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// GET registers a route on the root group.
func (s *Server) GET(path string, handlers ...gin.HandlerFunc) {
	s.engine.GET(path, handlers...)
}

// Group opens a route group under path.
func (s *Server) Group(path string, handlers ...gin.HandlerFunc) *gin.RouterGroup {
	return s.engine.Group(path, handlers...)
}
