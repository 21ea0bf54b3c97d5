package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/diillson/sales-insight-go/internal/application/usecase"
	"github.com/diillson/sales-insight-go/internal/domain/analysis"
	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Message   string            `json:"message"`
	SessionID string            `json:"session_id"`
	FileName  string            `json:"file_name"`
	KPIs      entity.KPISummary `json:"kpis"`
	Charts    Charts            `json:"charts"`
}

// Charts carries the chart series; a nil series means the column was absent.
type Charts struct {
	Trend    []types.ChartPoint `json:"trend"`
	Category []types.ChartPoint `json:"category"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Detail: detail})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.metrics.uploads.WithLabelValues("invalid").Inc()
		writeError(w, r, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.metrics.uploads.WithLabelValues("invalid").Inc()
		writeError(w, r, http.StatusBadRequest, "Missing form field 'file'")
		return
	}
	defer file.Close()

	start := time.Now()
	raw, err := s.sourceRepo.Decode(header.Filename, file, entity.SourceRef{Columns: s.mapping})
	if err != nil {
		if errors.Is(err, types.ErrUnsupportedFormat) {
			s.metrics.uploads.WithLabelValues("unsupported").Inc()
			writeError(w, r, http.StatusBadRequest, "Unsupported file format.")
			return
		}
		s.metrics.uploads.WithLabelValues("failed").Inc()
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	engine := analysis.New(raw, s.mapping)
	session := s.sessions.Put(header.Filename, engine)
	data := engine.Snapshot()
	s.metrics.analysisSeconds.Observe(time.Since(start).Seconds())
	s.metrics.uploads.WithLabelValues("ok").Inc()
	s.metrics.rows.Observe(float64(data.KPIs.TotalOrders))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{
		Message:   "File uploaded successfully.",
		SessionID: session.ID,
		FileName:  session.FileName,
		KPIs:      data.KPIs,
		Charts:    chartsOf(data),
	})
}

func chartsOf(data entity.Analysis) Charts {
	var charts Charts
	if data.Trend != nil {
		charts.Trend = usecase.TrendPoints(*data.Trend)
	}
	if data.Categories != nil {
		charts.Category = usecase.CategoryPoints(*data.Categories)
	}
	return charts
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*usecase.Session, bool) {
	session, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Upload a file first.")
		return nil, false
	}
	return session, true
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, session.Engine.Snapshot())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.exportRepo.RenderPDF(session.Engine.Snapshot(), &buf); err != nil {
		s.metrics.reports.WithLabelValues("failed").Inc()
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.reports.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=sales_report.pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		writeError(w, r, http.StatusNotFound, "Upload a file first.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
