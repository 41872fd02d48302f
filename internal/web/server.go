// Package web serves the pull API, the push event stream, and the embedded
// dashboard page.
package web

import (
	_ "embed"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"github.com/johns/planboard/internal/hub"
	"github.com/johns/planboard/internal/plan"
	"github.com/johns/planboard/internal/todo"
)

//go:embed index.html
var indexHTML string

// PlanSource is the plan watcher's read surface.
type PlanSource interface {
	List() ([]plan.File, error)
	Get(filename string) (plan.File, error)
}

// TodoSource is the todo watcher's read surface.
type TodoSource interface {
	Live() (todo.State, bool)
	ListSessions() ([]todo.SessionInfo, error)
	LoadSession(filename string) (todo.State, error)
}

// UpdateSource is the hub's read/subscribe surface.
type UpdateSource interface {
	Subscribe(buffer int) (<-chan hub.Update, func())
	PlanHistory(filename string) (hub.History, bool)
}

// Server is the planboard web server.
type Server struct {
	plans   PlanSource
	todos   TodoSource
	updates UpdateSource
	router  *gin.Engine
	page    []byte
}

// NewServer wires the routes. initialView selects the tab the dashboard
// opens on.
func NewServer(plans PlanSource, todos TodoSource, updates UpdateSource, initialView string) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		plans:   plans,
		todos:   todos,
		updates: updates,
		router:  router,
		page:    []byte(strings.ReplaceAll(indexHTML, "__INITIAL_VIEW__", initialView)),
	}

	router.GET("/", s.handleIndex)

	api := router.Group("/api")
	{
		api.GET("/plans", s.handlePlans)
		api.GET("/plans/:filename", s.handlePlan)
		api.GET("/plans/:filename/history", s.handlePlanHistory)
		api.GET("/todos", s.handleTodos)
		api.GET("/todos/stats", s.handleTodoStats)
		api.GET("/sessions", s.handleSessions)
		api.GET("/sessions/:filename", s.handleSession)
		api.GET("/stream", s.handleStream)
	}

	return s
}

// Handler returns the router behind gzip compression. Only JSON and HTML
// responses compress; the event stream's content type is excluded so frames
// are never buffered.
func (s *Server) Handler() http.Handler {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.ContentTypes([]string{"application/json", "text/html"}),
	)
	if err != nil {
		log.Printf("warning: gzip disabled: %v", err)
		return s.router
	}
	return wrapper(s.router)
}
