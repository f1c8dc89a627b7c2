package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/retentionai/retention-cli/internal/assistant"
	"github.com/retentionai/retention-cli/internal/dashboard"
	"github.com/retentionai/retention-cli/internal/ingest"
	"github.com/retentionai/retention-cli/internal/model"
	"github.com/retentionai/retention-cli/internal/store"
	"github.com/retentionai/retention-cli/pkg/modelserver"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "HR Analytics Backend"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	ds, err := ingest.Parse(header.Filename, data)
	if err != nil {
		switch {
		case eris.Is(err, ingest.ErrPDF):
			writeError(w, http.StatusBadRequest, "PDF Upload Detected. Please convert your PDF data to Excel (XLSX) or CSV format for analysis.")
		case eris.Is(err, ingest.ErrLegacyExcel):
			writeError(w, http.StatusBadRequest, "Legacy Excel (.xls) format is not supported. Please save the workbook as XLSX or CSV.")
		case eris.Is(err, ingest.ErrUnsupportedFormat):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported file format. Please upload CSV or Excel. detected: %s", header.Filename))
		case eris.Is(err, ingest.ErrParse):
			writeError(w, http.StatusBadRequest, "Corrupt or malformed file. Could not parse data.")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	results, skipped, err := s.coordinator.Process(r.Context(), ds.Rows)
	if err != nil {
		// The previous snapshot, if any, stays active.
		if eris.Is(err, modelserver.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "Attrition model unavailable. Please retry shortly.")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("System Error: %s", err.Error()))
		return
	}

	summary := dashboard.Summarize(results)
	snap := store.NewSnapshot(results, summary)
	s.store.Replace(snap)

	zap.L().Info("api: dataset replaced",
		zap.String("snapshot_id", snap.ID.String()),
		zap.Int("employees", len(results)),
		zap.Int("skipped_rows", len(skipped)),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "File processed successfully",
		"count":   len(results),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, ok := s.store.Summary()
	if !ok {
		writeJSON(w, http.StatusOK, dashboard.EmptySummary())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleEmployees(w http.ResponseWriter, _ *http.Request) {
	employees := s.store.Employees()
	if employees == nil {
		employees = []model.EmployeeResult{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) handleEmployeeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	emp, err := s.store.Lookup(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

type simulateRequest struct {
	EmployeeID string         `json:"employee_id"`
	Changes    map[string]any `json:"changes"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := s.store.Lookup(req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}

	result := s.simulator.Run(r.Context(), emp, req.Changes)
	if result.Error != "" {
		writeJSON(w, http.StatusOK, map[string]string{"error": result.Error})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type chatRequest struct {
	Message string              `json:"message"`
	History []assistant.Message `json:"history"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	messages := append(req.History, assistant.Message{Role: "user", Content: req.Message})

	var ctxSummary *model.Summary
	if summary, ok := s.store.Summary(); ok {
		ctxSummary = &summary
	}

	response := s.assistant.Chat(r.Context(), messages, ctxSummary)
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
