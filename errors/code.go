package errors

// ErrorCode identifies an application error class
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota + 1
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_ALREADY_EXISTS
	ErrorCode_INVALID_PAYLOAD

	// Graph store
	ErrorCode_STORE_UNAVAILABLE
	ErrorCode_STORE_SESSION_FAILED
	ErrorCode_PERSISTENCE_FAILED

	// Extraction pipeline
	ErrorCode_EXTRACTION_FAILED
	ErrorCode_NLP_ENGINE_FAILED

	// Query engine
	ErrorCode_QUERY_TRANSLATION_FAILED
	ErrorCode_QUERY_REJECTED
	ErrorCode_QUERY_EXECUTION_FAILED

	// Integrations
	ErrorCode_INTEGRATION_TRACKER_FAILED
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
	ErrorCode_INTEGRATION_LLM_FAILED

	ErrorCode_HTTP_OK
)

var codeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_STORE_UNAVAILABLE:          "STORE_UNAVAILABLE",
	ErrorCode_STORE_SESSION_FAILED:       "STORE_SESSION_FAILED",
	ErrorCode_PERSISTENCE_FAILED:         "PERSISTENCE_FAILED",
	ErrorCode_EXTRACTION_FAILED:          "EXTRACTION_FAILED",
	ErrorCode_NLP_ENGINE_FAILED:          "NLP_ENGINE_FAILED",
	ErrorCode_QUERY_TRANSLATION_FAILED:   "QUERY_TRANSLATION_FAILED",
	ErrorCode_QUERY_REJECTED:             "QUERY_REJECTED",
	ErrorCode_QUERY_EXECUTION_FAILED:     "QUERY_EXECUTION_FAILED",
	ErrorCode_INTEGRATION_TRACKER_FAILED: "INTEGRATION_TRACKER_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_LLM_FAILED:     "INTEGRATION_LLM_FAILED",
	ErrorCode_HTTP_OK:                    "OK",
}

// String returns the symbolic name for the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
