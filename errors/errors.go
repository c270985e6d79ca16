package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Graph Store Errors

// ErrStoreUnavailable reports a failed connectivity check against the graph
// store. Fatal at startup; callers must not retry.
func ErrStoreUnavailable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_STORE_UNAVAILABLE,
		Message:  "Graph store is unavailable",
	}
}

func ErrStoreSessionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORE_SESSION_FAILED,
		Message:  "Failed to acquire graph store session",
	}
}

// ErrPersistenceFailed reports a mid-sequence materialization failure. The
// meeting subgraph may be partially written; the document identity is attached
// so the caller can re-ingest manually.
func ErrPersistenceFailed(document, step string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PERSISTENCE_FAILED,
		Message:  "Failed to persist meeting graph",
	}.WithDetail("document", document).WithDetail("step", step)
}

// Extraction Errors

// ErrExtractionFailed aborts extraction for the whole document so a partially
// extracted record is never persisted.
func ErrExtractionFailed(document string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_EXTRACTION_FAILED,
		Message:  "Extraction failed for document",
	}.WithDetail("document", document)
}

func ErrNLPEngineFailed(capability string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_NLP_ENGINE_FAILED,
		Message:  fmt.Sprintf("NLP engine call failed: %s", capability),
	}
}

// Query Engine Errors

func ErrQueryTranslationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_QUERY_TRANSLATION_FAILED,
		Message:  "Failed to translate natural language query",
	}
}

func ErrQueryRejected(statement string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_QUERY_REJECTED,
		Message:  "Generated query was rejected: only read-only SELECT statements are allowed",
	}.WithDetail("statement", statement)
}

func ErrQueryExecutionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_QUERY_EXECUTION_FAILED,
		Message:  "Query execution failed",
	}
}

// Integration Errors

func ErrTrackerFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_TRACKER_FAILED,
		Message:  fmt.Sprintf("Issue tracker operation failed: %s", operation),
	}
}

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

func ErrLLMFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_LLM_FAILED,
		Message:  fmt.Sprintf("LLM call failed: %s", operation),
	}
}
