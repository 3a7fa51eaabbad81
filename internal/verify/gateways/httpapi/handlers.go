package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
	"github.com/doziebest/email-verifier-application/internal/verify/gateways/export"
	"github.com/doziebest/email-verifier-application/internal/verify/gateways/ingest"
)

const (
	errDecodeBody      = "invalid request body: %v"
	errEmailRequired   = "email is required"
	errUnknownProvider = "unknown provider in credentials: %q"
	errFileRequired    = "multipart upload must include a \"file\" field"
	warnTruncated      = "only the first %d addresses were processed; %d were dropped"
	exportFilename     = "verification_results"
)

type handler struct {
	verifier  Verifier
	logger    log.Logger
	maxUpload int64
}

type verifyRequest struct {
	Email       *string           `json:"email"`
	Credentials map[string]string `json:"credentials"`
}

type bulkRequest struct {
	Emails []string `json:"emails"`
}

type bulkResponse struct {
	BatchID   string                `json:"batch_id"`
	Verdicts  domain.History        `json:"verdicts"`
	Truncated bool                  `json:"truncated"`
	Dropped   int                   `json:"dropped"`
	Warning   string                `json:"warning,omitempty"`
	Counts    map[domain.Status]int `json:"counts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf(errDecodeBody, err))
		return
	}
	if req.Email == nil {
		writeError(w, http.StatusBadRequest, errEmailRequired)
		return
	}
	creds := make(domain.Credentials, len(req.Credentials))
	for name, key := range req.Credentials {
		p, err := domain.ParseProviderName(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf(errUnknownProvider, name))
			return
		}
		creds[p] = key
	}

	report := h.verifier.Verify(r.Context(), *req.Email, creds)
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) verifyBulk(w http.ResponseWriter, r *http.Request) {
	addresses, status, err := h.readAddresses(w, r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	batch := h.verifier.VerifyBatch(addresses)
	resp := bulkResponse{
		BatchID:   uuid.NewString(),
		Verdicts:  batch.Verdicts,
		Truncated: batch.Truncated,
		Dropped:   batch.Dropped,
		Counts:    batch.Verdicts.Counts(),
	}
	if batch.Truncated {
		resp.Warning = fmt.Sprintf(warnTruncated, len(batch.Verdicts), batch.Dropped)
	}
	h.logger.Info(map[string]any{
		"batch_id":   resp.BatchID,
		"request_id": middleware.GetReqID(r.Context()),
		"processed":  len(batch.Verdicts),
		"dropped":    batch.Dropped,
	}, "bulk_verified")
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	statuses, err := parseStatuses(q["status"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	addresses, status, err := h.readAddresses(w, r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	batch := h.verifier.VerifyBatch(addresses)
	rows := batch.Verdicts.Filter(statuses...)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", exportFilename, format))
	if batch.Truncated {
		w.Header().Set("X-Batch-Dropped", fmt.Sprint(batch.Dropped))
	}
	if err := export.Write(w, format, rows); err != nil {
		h.logger.Warn(map[string]any{"error": err.Error()}, "export_write_failed")
	}
}

// readAddresses accepts a JSON body {"emails": [...]} or a multipart upload
// with a "file" field. It returns the HTTP status to use on error.
func (h *handler) readAddresses(w http.ResponseWriter, r *http.Request) ([]string, int, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req bulkRequest
		if err := h.decodeJSON(w, r, &req); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf(errDecodeBody, err)
		}
		return req.Emails, http.StatusOK, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf(errDecodeBody, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, http.StatusBadRequest, errors.New(errFileRequired)
	}
	defer file.Close()

	addresses, err := ingest.Parse(header.Filename, file)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return addresses, http.StatusOK, nil
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUpload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

// parseStatuses accepts repeated and comma-separated status values.
func parseStatuses(values []string) ([]domain.Status, error) {
	var out []domain.Status
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			s, err := domain.ParseStatus(part)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
