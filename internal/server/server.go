// Package server is the reference persistence and upload collaborator: a
// small HTTP service implementing the save/fetch and upload contracts the
// library's clients speak, backed by sqlite and local disk storage.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/templata/go-profilegen/pkg/fault"
	"github.com/templata/go-profilegen/pkg/profile"
	"github.com/templata/go-profilegen/pkg/registry"
)

// Config wires the server's collaborators.
type Config struct {
	Store *Store
	// Registry gates saves to known template ids. Optional; when nil every
	// template id is accepted.
	Registry *registry.Registry
	// UploadDir is where uploaded files land. Required for the upload route.
	UploadDir string
	// PublicBase prefixes returned file URLs, e.g. "http://localhost:8085".
	PublicBase string
	Logger     *slog.Logger
}

// Server exposes the persistence and upload endpoints.
type Server struct {
	cfg    Config
	log    *slog.Logger
	engine *gin.Engine
}

// New builds the HTTP surface. Routes:
//
//	POST /v1/profiles/:template          save (assigns a profile id when absent)
//	GET  /v1/profiles/:template/:id      fetch
//	POST /v1/uploads                     multipart upload, returns {"url": ...}
//	GET  /files/*path                    serves uploaded files
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server: store is required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{cfg: cfg, log: log, engine: engine}

	v1 := engine.Group("/v1")
	v1.POST("/profiles/:template", s.saveProfile)
	v1.GET("/profiles/:template/:id", s.fetchProfile)
	v1.POST("/uploads", s.uploadFile)

	if cfg.UploadDir != "" {
		engine.Static("/files", cfg.UploadDir)
	}
	return s, nil
}

// Handler returns the server as an http.Handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}

type saveRequest struct {
	ProfileID string          `json:"profileId"`
	Fields    profile.Payload `json:"fields"`
}

func (s *Server) saveProfile(c *gin.Context) {
	templateID := c.Param("template")
	if s.cfg.Registry != nil && !s.cfg.Registry.Has(templateID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown template " + templateID})
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if len(req.Fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fields are required"})
		return
	}

	record, err := s.cfg.Store.Save(templateID, req.ProfileID, req.Fields)
	if err != nil {
		s.log.Error("save failed", "template", templateID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	s.log.Info("profile saved", "template", templateID, "profile", record.ProfileID)
	c.JSON(http.StatusOK, record)
}

func (s *Server) fetchProfile(c *gin.Context) {
	record, err := s.cfg.Store.Fetch(c.Param("template"), c.Param("id"))
	if err != nil {
		if fault.IsCode(err, fault.NotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("fetch failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch failed"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) uploadFile(c *gin.Context) {
	if s.cfg.UploadDir == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "uploads are not configured"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}

	// Stored names are random so repeated uploads of the same file never
	// clobber each other.
	name := uuid.NewString() + sanitizeExt(filepath.Ext(file.Filename))
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.log.Error("create upload dir", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		s.log.Error("store upload", "file", file.Filename, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	url := strings.TrimRight(s.cfg.PublicBase, "/") + "/files/" + name
	s.log.Info("file stored", "name", name, "size", file.Size)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func sanitizeExt(ext string) string {
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return strings.ToLower(ext)
}
