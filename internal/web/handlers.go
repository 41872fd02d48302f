package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/johns/planboard/internal/outline"
	"github.com/johns/planboard/internal/plan"
	"github.com/johns/planboard/internal/todo"
)

// planResponse is a PlanFile plus its parsed outline.
type planResponse struct {
	plan.File
	Parsed outline.Document `json:"parsed"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.page)
}

func (s *Server) handlePlans(c *gin.Context) {
	files, err := s.plans.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}

func (s *Server) handlePlan(c *gin.Context) {
	f, err := s.plans.Get(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}

	c.JSON(http.StatusOK, planResponse{File: f, Parsed: outline.Parse(f.Content)})
}

func (s *Server) handlePlanHistory(c *gin.Context) {
	hist, ok := s.updates.PlanHistory(c.Param("filename"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no history for plan"})
		return
	}
	c.JSON(http.StatusOK, hist)
}

func (s *Server) handleTodos(c *gin.Context) {
	state, ok := s.todos.Live()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no todo state"})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleTodoStats(c *gin.Context) {
	state, ok := s.todos.Live()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no todo state"})
		return
	}
	c.JSON(http.StatusOK, todo.ComputeStats(state))
}

func (s *Server) handleSessions(c *gin.Context) {
	infos, err := s.todos.ListSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, infos)
}

func (s *Server) handleSession(c *gin.Context) {
	state, err := s.todos.LoadSession(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}
