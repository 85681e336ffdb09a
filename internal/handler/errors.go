package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/tripform"
)

// errorDetail is the body of every non-2xx response:
// {"error":{"code":"validation_error","message":"email is invalid","field":"email"}}
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	TripID  string `json:"trip_id,omitempty"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errBadBody marks a request body that could not be decoded.
var errBadBody = errors.New("request body is invalid")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into v. Unknown fields are rejected.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return errBadBody
	}
	return nil
}

// writeError maps err onto a status code and the error envelope.
// Order matters: a remote 404 is a RemoteError that also matches ErrNotFound.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := classify(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: detail})
}

func classify(err error) (int, errorDetail) {
	var verr *domain.ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorDetail{Code: "validation_error", Message: verr.Error(), Field: verr.Field}
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, errorDetail{Code: "request_too_large", Message: "request body is too large"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorDetail{Code: "not_found", Message: "not found"}
	case errors.Is(err, domain.ErrInFlight):
		return http.StatusConflict, errorDetail{Code: "in_flight", Message: "a previous request is still running"}
	case errors.Is(err, tripform.ErrUnexpectedEvent):
		return http.StatusConflict, errorDetail{Code: "unexpected_step", Message: err.Error()}
	case errors.Is(err, domain.ErrInvariant):
		return http.StatusBadRequest, errorDetail{Code: "invariant", Message: err.Error()}
	case errors.Is(err, domain.ErrRemote):
		return http.StatusBadGateway, errorDetail{Code: "remote_error", Message: err.Error()}
	}
	return http.StatusInternalServerError, errorDetail{Code: "internal", Message: "internal server error"}
}

// requestError answers a body that never reached the service layer.
func requestError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: errorDetail{Code: "request_too_large", Message: "request body is too large"}})
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{Code: "validation_error", Message: err.Error()}})
}
