package server

import (
	"encoding/json"
	"net/http"

	"github.com/strandlab/rnaplot/pkg/errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Index   *int   `json:"index,omitempty"`
}

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"json": "application/json",
	"png":  "image/png",
	"pdf":  "application/pdf",
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps pipeline and store errors to HTTP statuses. Input
// errors surface their code and index; everything else is reported as an
// opaque internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	detail := errorDetail{
		Code:    string(errors.ErrCodeInternal),
		Message: "internal error",
	}

	switch {
	case errors.IsInput(err):
		status = http.StatusBadRequest
		detail.Code = string(errors.GetCode(err))
		detail.Message = errors.UserMessage(err)
		if idx := errors.GetIndex(err); idx != errors.NoIndex {
			detail.Index = &idx
		}
	case errors.Is(err, errors.ErrCodeDrawingNotFound), errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
		detail.Code = string(errors.GetCode(err))
		detail.Message = errors.UserMessage(err)
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", GetRequestID(r.Context()),
			"err", err)
	}

	s.writeJSON(w, status, errorBody{Error: detail})
}
