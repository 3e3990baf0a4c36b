package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerlens-org/ledgerlens/dataset"
	"github.com/ledgerlens-org/ledgerlens/engine"
	"github.com/ledgerlens-org/ledgerlens/schema"
	"github.com/ledgerlens-org/ledgerlens/view"
)

// analysisResponse is the payload for both upload variants.
type analysisResponse struct {
	AnalysisID  string            `json:"analysisId"`
	Columns     []string          `json:"columns"`
	Rows        []dataset.Record  `json:"rows"`
	Roles       schema.Roles      `json:"roles"`
	FilterModes map[string]string `json:"filterModes"`
	Analysis    engine.Result     `json:"analysis"`
}

// viewRequest carries a dataset snapshot plus the view to apply. The
// server keeps no state, so the client sends its rows back each time.
type viewRequest struct {
	Columns []string         `json:"columns"`
	Rows    []dataset.Record `json:"rows"`
	View    view.Config      `json:"view"`
}

type analyzeTextRequest struct {
	CSV string `json:"csv"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUpload accepts a multipart "file" field holding a CSV or XLSX
// export and returns the parsed rows together with the full analysis.
func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.fail(c, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > s.cfg.UploadLimitBytes() {
		s.fail(c, http.StatusRequestEntityTooLarge, "file exceeds upload limit")
		return
	}

	var ds *dataset.Dataset
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx", ".xlsm", ".xls":
		ds, err = dataset.FromXLSX(file)
	default:
		ds, err = dataset.FromCSV(file)
	}
	if err != nil {
		s.log.Warn("upload parse failed", "file", header.Filename, "err", err)
		s.fail(c, http.StatusBadRequest, "could not parse file")
		return
	}

	c.JSON(http.StatusOK, s.analyze(ds))
}

// handleAnalyzeText accepts raw CSV text, for spreadsheet paste flows
// that never touch a file.
func (s *Server) handleAnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CSV) == "" {
		s.fail(c, http.StatusBadRequest, "csv text required")
		return
	}

	ds, err := dataset.FromCSV(strings.NewReader(req.CSV))
	if err != nil {
		s.fail(c, http.StatusBadRequest, "could not parse csv text")
		return
	}

	c.JSON(http.StatusOK, s.analyze(ds))
}

// handleView applies a filter/sort/paginate config to a dataset
// snapshot and returns one page plus the filtered count.
func (s *Server) handleView(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "invalid view request")
		return
	}

	if req.View.PageSize == 0 {
		req.View.PageSize = s.cfg.DefaultPageSize
	}

	ds := dataset.New(req.Columns, req.Rows)
	c.JSON(http.StatusOK, view.Apply(ds, req.View))
}

func (s *Server) analyze(ds *dataset.Dataset) analysisResponse {
	roles := schema.Detect(ds)
	result := engine.Analyze(ds, roles,
		engine.WithTopVendors(s.cfg.TopVendors),
		engine.WithOtherLabel(s.cfg.OtherLabel),
		engine.WithDefaultCurrency(s.cfg.DefaultCurrency),
	)

	modes := make(map[string]string, len(ds.Columns))
	for _, col := range ds.Columns {
		if view.SubstringFilterable(ds, col, s.cfg.DistinctThreshold, s.cfg.HighCardinalityColumns) {
			modes[col] = "substring"
		} else {
			modes[col] = "exact"
		}
	}

	return analysisResponse{
		AnalysisID:  uuid.New().String(),
		Columns:     ds.Columns,
		Rows:        ds.Rows,
		Roles:       roles,
		FilterModes: modes,
		Analysis:    result,
	}
}

func (s *Server) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
