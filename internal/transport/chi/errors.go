package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// ErrorCode is the machine-readable error kind of an API error response.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeUnauthorized         ErrorCode = "unauthorized"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeCollectionNotFound   ErrorCode = "collection_not_found"
	CodeCollectionExists     ErrorCode = "collection_exists"
	CodeMissingAPIKey        ErrorCode = "missing_api_key"
	CodeObjectNotFound       ErrorCode = "object_not_found"
	CodeInvalidObjectID      ErrorCode = "invalid_object_id"
	CodeInvalidEnumValue     ErrorCode = "invalid_enum_value"
	CodeInvalidFieldValue    ErrorCode = "invalid_field_value"
	CodeInvalidPropertyValue ErrorCode = "invalid_property_value"
	CodeRemoteError          ErrorCode = "remote_error"
	CodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Properties lists the object properties that failed to encode.
	Properties []string `json:"properties,omitempty"`
	// RemoteStatus is the cluster's HTTP status for remote errors; 0 when the
	// cluster could not be reached.
	RemoteStatus *int `json:"remote_status,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		remoteErrorHandler,
		invalidPropertyHandler,
		sentinelHandler(domain.ErrObjectNotFound, http.StatusNotFound, CodeObjectNotFound, false),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeCollectionNotFound, false),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeCollectionExists, true),
		sentinelHandler(domain.ErrMissingAPIKey, http.StatusBadRequest, CodeMissingAPIKey, true),
		sentinelHandler(domain.ErrInvalidObjectID, http.StatusBadRequest, CodeInvalidObjectID, true),
		sentinelHandler(domain.ErrInvalidEnumValue, http.StatusBadRequest, CodeInvalidEnumValue, true),
		sentinelHandler(domain.ErrInvalidFieldValue, http.StatusBadRequest, CodeInvalidFieldValue, true),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, CodeValidationFailed, true),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// With detailed, the full error text is returned; otherwise only the sentinel
// message, so wrapped internals stay out of the response.
func sentinelHandler(sentinel error, status int, code ErrorCode, detailed bool) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if detailed {
			msg = err.Error()
		}
		writeError(w, status, code, msg)
		return true
	}
}

// remoteErrorHandler surfaces the cluster's own message verbatim.
func remoteErrorHandler(w http.ResponseWriter, err error) bool {
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		return false
	}
	status := re.StatusCode
	writeJSON(w, http.StatusBadGateway, ErrorResponse{
		Code:         CodeRemoteError,
		Message:      re.Message,
		RemoteStatus: &status,
	})
	return true
}

func invalidPropertyHandler(w http.ResponseWriter, err error) bool {
	var ipe *domain.InvalidPropertyValueError
	if !errors.As(err, &ipe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:       CodeInvalidPropertyValue,
		Message:    ipe.Error(),
		Properties: ipe.Properties,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.log(r)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
