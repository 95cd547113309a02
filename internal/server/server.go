// Package server exposes report generation over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/buildinfo"
	"github.com/demonstra-dev/demonstra/internal/export"
	"github.com/demonstra-dev/demonstra/internal/report"
	"github.com/demonstra-dev/demonstra/internal/runlog"
)

// UploadField is the multipart field carrying the SPED file.
const UploadField = "spedFile"

// Options configure a Server.
type Options struct {
	MaxUploadBytes int64
	DefaultFormat  string
	// RunLogRoot, when set, records every generated report under
	// <RunLogRoot>/logs/runs.csv.
	RunLogRoot string
}

// Server holds the HTTP handlers. It keeps no per-request state.
type Server struct {
	svc       *report.Service
	exporters *export.Registry
	log       *zap.Logger
	opts      Options
}

// New creates a Server. A nil logger discards diagnostics.
func New(svc *report.Service, exporters *export.Registry, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, exporters: exporters, log: log, opts: opts}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())
	if s.opts.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = s.opts.MaxUploadBytes
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/statements", s.handleStatements)
		apiV1.POST("/statements/export", s.handleExport)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "demonstra", "version": buildinfo.Version})
	})
	return router
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}

// generate reads the uploaded file and runs the report pipeline. It writes
// the error response itself and returns nil on failure.
func (s *Server) generate(c *gin.Context) *report.Report {
	if s.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)
	}
	header, err := c.FormFile(UploadField)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.fail(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Arquivo SPED excede o limite de %d bytes", tooLarge.Limit), err.Error())
		return nil
	}
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Arquivo SPED (.txt) não encontrado ou inválido", err.Error())
		return nil
	}

	f, err := header.Open()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo SPED", err.Error())
		return nil
	}
	defer f.Close()

	rep, err := s.svc.Generate(header.Filename, f)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Erro ao processar o arquivo SPED", err.Error())
		return nil
	}
	if s.opts.RunLogRoot != "" {
		if err := runlog.Append(s.opts.RunLogRoot, []runlog.Entry{runlog.FromReport(rep)}); err != nil {
			s.log.Warn("could not record run", zap.String("run_id", rep.RunID), zap.Error(err))
		}
	}
	return rep
}

func (s *Server) handleStatements(c *gin.Context) {
	rep := s.generate(c)
	if rep == nil {
		return
	}
	msg := "Demonstrações geradas com sucesso"
	if rep.Sample {
		msg = "Nenhum registro encontrado no arquivo; exibindo dados de exemplo"
	}
	s.success(c, rep, msg)
}

func (s *Server) handleExport(c *gin.Context) {
	format := c.DefaultQuery("format", s.opts.DefaultFormat)
	exp := s.exporters.Get(format)
	if exp == nil {
		s.fail(c, http.StatusBadRequest, fmt.Sprintf("Formato de exportação não suportado: %s", format),
			"formatos aceitos: "+strings.Join(s.exporters.Formats(), ", "))
		return
	}

	rep := s.generate(c)
	if rep == nil {
		return
	}

	var buf bytes.Buffer
	if err := exp.Export(&buf, rep); err != nil {
		s.fail(c, http.StatusInternalServerError, "Erro ao exportar as demonstrações", err.Error())
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.FileName(rep, exp.Format()))
	c.Header("X-Run-ID", rep.RunID)
	c.Data(http.StatusOK, exp.ContentType(), buf.Bytes())
	s.log.Info("API export", zap.String("format", exp.Format()), zap.String("run_id", rep.RunID), zap.Int("bytes", buf.Len()))
}
