package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/hybridrag/internal/core/model"
)

const RequestIDHeader = "X-Request-ID"

// Retriever is the part of core.HybridRetriever the HTTP layer needs.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]model.Document, error)
}

type Server struct {
	Retriever Retriever
}

func NewServer(retriever Retriever) *Server {
	return &Server{Retriever: retriever}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), requestLogger())

	r.GET("/health", s.Health)
	r.POST("/retrieve", s.Retrieve)

	return r
}

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
		}).Debug("request handled")
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type RetrieveRequest struct {
	Query string `json:"query"`
}

type RetrieveResponse struct {
	Documents []model.Document `json:"documents"`
}

func (s *Server) Retrieve(c *gin.Context) {
	var req RetrieveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	docs, err := s.Retriever.Retrieve(c.Request.Context(), req.Query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"query":      req.Query,
		}).WithError(err).Error("Failed to retrieve")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve"})
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}

	c.JSON(http.StatusOK, RetrieveResponse{Documents: docs})
}
