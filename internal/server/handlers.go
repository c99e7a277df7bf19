package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/philipparndt/stlcheck/internal/history"
	"github.com/philipparndt/stlcheck/internal/logger"
	"github.com/philipparndt/stlcheck/pkg/analysis"
	"github.com/philipparndt/stlcheck/pkg/mesh"
	"github.com/philipparndt/stlcheck/pkg/stl"
)

// Handler holds the API route handlers.
type Handler struct {
	store     *history.Store
	maxUpload int64
}

// NewHandler creates a new Handler. store may be nil when history is disabled.
func NewHandler(store *history.Store, maxUpload int64) *Handler {
	return &Handler{store: store, maxUpload: maxUpload}
}

type meshPayload struct {
	Vertices [][3]float64 `json:"vertices"`
	Faces    []mesh.Face  `json:"faces"`
}

type summaryPayload struct {
	NumVertices   int  `json:"numVertices"`
	NumFaces      int  `json:"numFaces"`
	NumComponents int  `json:"numComponents"`
	IsWatertight  bool `json:"isWatertight"`
}

// AnalyzeResponse is the body of a successful POST /api/analyze.
type AnalyzeResponse struct {
	Mesh     meshPayload      `json:"mesh"`
	Summary  summaryPayload   `json:"summary"`
	Issues   []analysis.Issue `json:"issues"`
	Checksum string           `json:"checksum"`
}

func newAnalyzeResponse(m *mesh.Model, report *analysis.Report, checksum string) AnalyzeResponse {
	vertices := make([][3]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = v.Array()
	}
	return AnalyzeResponse{
		Mesh: meshPayload{
			Vertices: vertices,
			Faces:    m.Faces,
		},
		Summary: summaryPayload{
			NumVertices:   report.Summary.NumVertices,
			NumFaces:      report.Summary.NumFaces,
			NumComponents: report.Summary.NumComponents,
			IsWatertight:  report.Summary.IsWatertight,
		},
		Issues:   report.Issues,
		Checksum: checksum,
	}
}

// Ping handles GET /ping.
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong"))
}

// Analyze handles POST /api/analyze with a multipart "file" field.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("File too large"))
		case r.MultipartForm != nil && len(r.MultipartForm.Value["file"]) > 0:
			// A part without a filename is parsed as a plain form value.
			writeJSON(w, http.StatusBadRequest, errorBody("Empty filename"))
		default:
			writeJSON(w, http.StatusBadRequest, errorBody("No file provided"))
		}
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("Empty filename"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("read upload failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	soup, err := stl.Decode(bytes.NewReader(data))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if soup.Name == "" {
		soup.Name = header.Filename
	}

	m := soup.Mesh()
	report, err := analysis.Analyze(m)
	switch {
	case errors.Is(err, mesh.ErrEmptyMesh):
		writeJSON(w, http.StatusBadRequest, errorBody("Mesh is empty"))
		return
	case errors.Is(err, mesh.ErrVertexIndex):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	case err != nil:
		logger.Error("analysis failed", zap.String("file", header.Filename), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	checksum := history.Checksum(data)
	if h.store != nil {
		if err := h.store.Save(checksum, header.Filename, report); err != nil {
			logger.Warn("save report failed", zap.String("checksum", checksum), zap.Error(err))
		}
	}

	logger.Debug("mesh analyzed",
		zap.String("file", header.Filename),
		zap.Int("faces", report.Summary.NumFaces),
		zap.Bool("watertight", report.Summary.IsWatertight),
		zap.Int("issues", len(report.Issues)),
	)

	writeJSON(w, http.StatusOK, newAnalyzeResponse(m, report, checksum))
}

// ListReports handles GET /api/reports.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("Report history is disabled"))
		return
	}
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid limit"))
			return
		}
		limit = n
	}

	entries, err := h.store.List(limit)
	if err != nil {
		logger.Error("list reports failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reports": entries,
		"total":   len(entries),
	})
}

// GetReport handles GET /api/reports/{checksum}.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("Report history is disabled"))
		return
	}
	checksum := chi.URLParam(r, "checksum")

	entry, err := h.store.Get(checksum)
	if errors.Is(err, history.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("Report not found"))
		return
	}
	if err != nil {
		logger.Error("get report failed", zap.String("checksum", checksum), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Ready handles GET /health/ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Live handles GET /health/live.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
