package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/invoicer/pkg/errors"
	invio "github.com/matzehuels/invoicer/pkg/io"
	"github.com/matzehuels/invoicer/pkg/pipeline"
)

// RenderIDHeader names the response header carrying the render identifier.
const RenderIDHeader = "X-Render-ID"

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(RenderIDHeader, id)

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatXLSX
	}
	palette := r.URL.Query().Get("palette")
	if palette == "" {
		palette = s.palette
	}

	r.Body = http.MaxBytesReader(w, r.Body, invio.MaxInvoiceSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			jsonError(w, id, fmt.Sprintf("invoice exceeds %d bytes", invio.MaxInvoiceSize), errors.ErrCodeInvalidInput, http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, id, "failed to read body", errors.ErrCodeInvalidInput, http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		jsonError(w, id, "request body is empty", errors.ErrCodeInvalidInput, http.StatusBadRequest)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Data:        data,
		InputFormat: invio.FormatFromContentType(r.Header.Get("Content-Type")),
		Formats:     []string{format},
		Palette:     palette,
		Page:        s.page,
		Logger:      s.log.With("render_id", id),
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.log.Error("render failed", "render_id", id, "err", err)
		}
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		jsonError(w, id, errors.UserMessage(err), code, status)
		return
	}

	if result.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if format == pipeline.FormatXLSX {
		w.Header().Set("Content-Disposition", `attachment; filename="invoice`+pipeline.Extensions[format]+`"`)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// statusFor maps an error code to an HTTP status. Documents that parse but
// cannot be billed are unprocessable; other input problems are bad requests.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidRate, errors.ErrCodeInvalidHours, errors.ErrCodeInvalidItem, errors.ErrCodeEmptyDocument:
		return http.StatusUnprocessableEntity
	}
	if errors.IsInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func jsonError(w http.ResponseWriter, id, msg string, code errors.Code, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":     msg,
		"code":      string(code),
		"render_id": id,
	})
}
