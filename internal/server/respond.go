package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/commute/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error  string      `json:"error"`
	Code   errors.Code `json:"code,omitempty"`
	Line   int         `json:"line,omitempty"`
	Offset *int        `json:"offset,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidLabel, errors.ErrCodeInvalidEquation,
		errors.ErrCodeInvalidDiagram, errors.ErrCodeDuplicateMorphism,
		errors.ErrCodeLimitExceeded:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	resp := errorResponse{Error: errors.UserMessage(err), Code: code}
	if line, offset, ok := errors.Position(err); ok {
		resp.Line, resp.Offset = line, &offset
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestIDFrom(r.Context()))
		resp.Error = "internal error"
	}
	writeJSON(w, status, resp)
}

// decode reads a JSON body of at most MaxBodyBytes into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
