package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/careerstack/resumegest/internal/pipeline"
	"github.com/careerstack/resumegest/internal/reader"
	"github.com/go-chi/chi/v5"
)

// maxBatchFiles caps how many resumes one batch upload may carry.
const maxBatchFiles = 20

var errUnsupportedFormat = errors.New("unsupported file format")

type parseResponse struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

type batchResponse struct {
	Jobs   []parseResponse `json:"jobs"`
	Errors []string        `json:"errors,omitempty"`
}

// handleParse accepts a single resume upload and queues it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	job, err := s.enqueueUpload(r, header.Filename, file)
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, errUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		jsonError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, parseResponse{
		JobID:    job.ID,
		Status:   string(job.Snapshot().Status),
		Filename: job.Filename,
	})
}

// handleBatchParse accepts multiple resume uploads in one request.
func (s *Server) handleBatchParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		jsonError(w, http.StatusBadRequest, "missing files field")
		return
	}
	if len(headers) > maxBatchFiles {
		jsonError(w, http.StatusBadRequest, "too many files in batch")
		return
	}

	resp := batchResponse{Jobs: make([]parseResponse, 0, len(headers))}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			resp.Errors = append(resp.Errors, header.Filename+": "+err.Error())
			continue
		}
		job, err := s.enqueueUpload(r, header.Filename, file)
		file.Close()
		if err != nil {
			resp.Errors = append(resp.Errors, header.Filename+": "+err.Error())
			continue
		}
		resp.Jobs = append(resp.Jobs, parseResponse{
			JobID:    job.ID,
			Status:   string(job.Snapshot().Status),
			Filename: job.Filename,
		})
	}

	status := http.StatusAccepted
	if len(resp.Jobs) == 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

// enqueueUpload reads an uploaded file, creates a job, and submits it.
func (s *Server) enqueueUpload(r *http.Request, filename string, file io.Reader) (*pipeline.Job, error) {
	name := sanitizeFilename(filename)
	if s.orchestrator.RemoteReader() == nil && !reader.IsSupportedExtension(name) {
		return nil, fmt.Errorf("%w: %s", errUnsupportedFormat, filepath.Ext(name))
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	job := &pipeline.Job{
		ID:          pipeline.NewJobID(),
		UserID:      r.Header.Get("X-User-ID"),
		Status:      pipeline.StatusQueued,
		Filename:    name,
		ContentHash: pipeline.ContentHashHex(data),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		return nil, err
	}

	s.log.Info("job queued",
		"job_id", job.ID,
		"filename", job.Filename,
		"bytes", len(data),
		"queue_depth", s.orchestrator.QueueDepth(),
	)
	return job, nil
}

// handleParseStatus returns job progress.
func (s *Server) handleParseStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleParseResult returns the structured record for a completed job.
func (s *Server) handleParseResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, http.StatusNotFound, "job not found")
		return
	}

	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted:
		writeJSON(w, http.StatusOK, map[string]any{
			"job_id":   snap.ID,
			"filename": snap.Filename,
			"resume":   job.Result(),
		})
	case pipeline.StatusFailed:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"job_id": snap.ID,
			"status": snap.Status,
			"errors": snap.Progress.Errors,
		})
	default:
		writeJSON(w, http.StatusConflict, map[string]any{
			"job_id": snap.ID,
			"status": snap.Status,
			"phase":  snap.Phase,
		})
	}
}

// sanitizeFilename strips path components and suspicious characters.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_' || r == ' ':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
