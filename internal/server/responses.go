package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status  string   `json:"status"` // "success" or "error"
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func (s *Server) success(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Data: data, Message: message})
	s.log.Info("API success", zap.String("path", c.Request.URL.Path), zap.Int("status", http.StatusOK))
}

func (s *Server) fail(c *gin.Context, code int, message string, errs ...string) {
	c.JSON(code, Envelope{Status: "error", Message: message, Errors: errs})
	s.log.Error("API error", zap.String("path", c.Request.URL.Path), zap.Int("status", code), zap.Strings("errors", errs))
}
