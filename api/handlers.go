package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/moodscope"
)

// Form fields of the analysis endpoint.
const (
	fieldText  = "text"
	fieldImage = "image"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

// handleAnalyzeEntry scores a journal entry posted as a multipart or
// urlencoded form.
func (s *Server) handleAnalyzeEntry(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseAnalyzeEntry(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	report, err := s.analyzer.Analyze(*req.Text, req.Image)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveReport(report, time.Since(start))
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) parseAnalyzeEntry(w http.ResponseWriter, r *http.Request) (*AnalyzeEntryRequest, error) {
	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, bodyError(err)
	}

	req := &AnalyzeEntryRequest{}
	if values, ok := r.PostForm[fieldText]; ok && len(values) > 0 {
		req.Text = &values[0]
	}

	file, header, err := r.FormFile(fieldImage)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return nil, bodyError(err)
	default:
		defer file.Close()
		req.ImageName = header.Filename
		if req.Image, err = io.ReadAll(file); err != nil {
			return nil, bodyError(err)
		}
	}

	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	return req, nil
}

// fail maps an error to a status code, records it and writes the error body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	var typed *moodscope.Error

	status := http.StatusInternalServerError
	kind := "InternalError"
	message := "internal server error"

	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
		kind = string(moodscope.KindInvalidInput)
		message = "request body too large"
	case errors.As(err, &typed) && typed.Kind == moodscope.KindInvalidInput:
		status = http.StatusBadRequest
		kind = string(typed.Kind)
		message = typed.Message
	}

	if status < http.StatusInternalServerError {
		if s.metrics != nil {
			s.metrics.ObserveRejection(moodscope.ErrorKind(kind))
		}
		s.logger.Debug("request rejected",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("reason", message))
	} else {
		s.logger.Error("analysis failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err))
	}

	writeError(w, status, kind, message)
}

// bodyError keeps size-limit errors recognizable and reports anything else
// as malformed input.
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return moodscope.InvalidInputf("malformed form body: %v", err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Kind: kind, Message: msg}})
}
