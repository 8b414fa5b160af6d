// README: API gateway; registers HTTP routes and delegates to the session.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carona/internal/http/middleware"
	"carona/internal/session"
)

type ServerDeps struct {
	Session *session.Session
	Logger  *slog.Logger
}

type Server struct {
	session *session.Session
	logger  *slog.Logger
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{session: deps.Session, logger: deps.Logger}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(s.logger), middleware.Metrics())

	r.POST("/api/session/login", s.handleLogin)
	r.POST("/api/session/logout", s.handleLogout)
	r.POST("/api/session/role", s.handleSelectRole)
	r.POST("/api/session/vehicle", s.handleRegisterVehicle)
	r.POST("/api/session/navigate", s.handleNavigate)
	r.GET("/api/session", s.handleSnapshot)

	r.POST("/api/rides/find", s.handleFindRide)
	r.POST("/api/rides/search", s.handleSearch)
	r.POST("/api/rides/confirm", s.handleConfirm)
	r.POST("/api/rides/cancel", s.handleCancel)
	r.POST("/api/rides/rate", s.handleRate)
	r.POST("/api/rides/new-search", s.handleNewSearch)
	r.POST("/api/rides/offer", s.handleOffer)

	r.GET("/api/history", s.handleHistory)
	r.GET("/api/offers", s.handleOffers)
	r.GET("/api/requests", s.handleRequests)

	r.GET("/ws/progress", s.handleProgressStream)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
