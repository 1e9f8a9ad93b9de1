package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/streetindex-go/pkg/streetindex"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/grid"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/output"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Server serves street indexes over HTTP.
type Server struct {
	// Defaults apply to requests that omit page, grid or coverage.
	Defaults streetindex.Options
}

// NewServer creates a Server that fills omitted request fields from defaults.
func NewServer(defaults streetindex.Options) *Server {
	return &Server{Defaults: defaults}
}

// SetupRouter registers the routes on a new gin engine.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.Health)
	r.POST("/index", s.BuildIndex)
	r.GET("/index/column/:n", s.ColumnLabel)

	return r
}

// IndexRequest is the body of POST /index.
type IndexRequest struct {
	Page     *models.BoundingBox `json:"page"`
	Grid     *models.GridConfig  `json:"grid"`
	Coverage string              `json:"coverage"`
	Labels   []models.LabelRect  `json:"labels"`
}

// Health reports that the server is up.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// BuildIndex builds a street index from the posted labels. The response is
// JSON unless ?format=xlsx is given.
func (s *Server) BuildIndex(c *gin.Context) {
	var req IndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	opts := s.Defaults
	if req.Page != nil {
		opts.Page = *req.Page
	}
	if req.Grid != nil {
		opts.Grid = *req.Grid
	}
	if req.Coverage != "" {
		coverage, ok := grid.ParseCoverage(req.Coverage)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coverage"})
			return
		}
		opts.Coverage = coverage
	}

	idx, err := streetindex.Build(req.Labels, opts)
	if err != nil {
		var cfgErr *grid.ConfigError
		var geoErr *grid.GeometryError
		var limitErr *grid.CellLimitError
		if errors.As(err, &cfgErr) || errors.As(err, &geoErr) || errors.As(err, &limitErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		slog.Error("failed to build index", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build index"})
		return
	}

	if c.Query("format") == "xlsx" {
		f, err := output.BuildWorkbook(idx)
		if err != nil {
			slog.Error("failed to build workbook", "id", idx.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
			return
		}
		defer f.Close()

		c.Header("Content-Disposition", `attachment; filename="street-index.xlsx"`)
		c.Header("Content-Type", xlsxContentType)
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			slog.Error("failed to write workbook", "id", idx.ID, "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, idx)
}

// ColumnLabel returns the letter label of a zero-based column index.
func (s *Server) ColumnLabel(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column index"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": n, "label": grid.ColumnLabel(n)})
}
