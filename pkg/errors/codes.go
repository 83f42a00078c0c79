package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
)

// Sentinel pseudo-codes used by GetCode.
const (
	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// Document module error codes (annotation/sentence/vocabulary input).
const (
	ErrCodeArticleNotFound   ErrorCode = "DOC_001"
	ErrCodeDocumentInvalid   ErrorCode = "DOC_002"
	ErrCodeDocumentTooLarge  ErrorCode = "DOC_003"
	ErrCodeDocumentDecode    ErrorCode = "DOC_004"
	ErrCodeSentenceOrdering  ErrorCode = "DOC_005"
	ErrCodeUnknownRole       ErrorCode = "DOC_006"
	ErrCodeDocumentConflict  ErrorCode = "DOC_007"
)

// Render module error codes.
const (
	ErrCodeRenderFailed     ErrorCode = "REN_001"
	ErrCodeSerializeFailed  ErrorCode = "REN_002"
	ErrCodeRenderCacheError ErrorCode = "REN_003"
)

// Narration / TTS module error codes.
const (
	ErrCodeSynthesisFailed     ErrorCode = "TTS_001"
	ErrCodeSynthesisCancelled  ErrorCode = "TTS_002"
	ErrCodeVoiceUnsupported    ErrorCode = "TTS_003"
	ErrCodeBridgeUnavailable   ErrorCode = "TTS_004"
	ErrCodeBoundaryParseFailed ErrorCode = "TTS_005"
	ErrCodeAudioNotFound       ErrorCode = "TTS_006"
	ErrCodeAudioStoreFailed    ErrorCode = "TTS_007"
)

// Playback synchronization error codes.
const (
	ErrCodeSentenceIndexRange ErrorCode = "SYNC_001"
	ErrCodeTimelineEmpty      ErrorCode = "SYNC_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,

	ErrCodeArticleNotFound:  http.StatusNotFound,
	ErrCodeDocumentInvalid:  http.StatusUnprocessableEntity,
	ErrCodeDocumentTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeDocumentDecode:   http.StatusBadRequest,
	ErrCodeSentenceOrdering: http.StatusUnprocessableEntity,
	ErrCodeUnknownRole:      http.StatusUnprocessableEntity,
	ErrCodeDocumentConflict: http.StatusConflict,

	ErrCodeRenderFailed:     http.StatusInternalServerError,
	ErrCodeSerializeFailed:  http.StatusInternalServerError,
	ErrCodeRenderCacheError: http.StatusInternalServerError,

	ErrCodeSynthesisFailed:     http.StatusBadGateway,
	ErrCodeSynthesisCancelled:  http.StatusConflict,
	ErrCodeVoiceUnsupported:    http.StatusBadRequest,
	ErrCodeBridgeUnavailable:   http.StatusServiceUnavailable,
	ErrCodeBoundaryParseFailed: http.StatusBadGateway,
	ErrCodeAudioNotFound:       http.StatusNotFound,
	ErrCodeAudioStoreFailed:    http.StatusInternalServerError,

	ErrCodeSentenceIndexRange: http.StatusBadRequest,
	ErrCodeTimelineEmpty:      http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",

	ErrCodeArticleNotFound:  "article not found",
	ErrCodeDocumentInvalid:  "document failed schema validation",
	ErrCodeDocumentTooLarge: "document exceeds size limit",
	ErrCodeDocumentDecode:   "failed to decode document JSON",
	ErrCodeSentenceOrdering: "sentence list is not ordered and disjoint",
	ErrCodeUnknownRole:      "unknown annotation role",
	ErrCodeDocumentConflict: "document already exists",

	ErrCodeRenderFailed:     "render failed",
	ErrCodeSerializeFailed:  "markup serialization failed",
	ErrCodeRenderCacheError: "render cache error",

	ErrCodeSynthesisFailed:     "speech synthesis failed",
	ErrCodeSynthesisCancelled:  "speech synthesis cancelled",
	ErrCodeVoiceUnsupported:    "unsupported voice",
	ErrCodeBridgeUnavailable:   "tts bridge unavailable",
	ErrCodeBoundaryParseFailed: "failed to parse word boundaries",
	ErrCodeAudioNotFound:       "audio object not found",
	ErrCodeAudioStoreFailed:    "failed to store audio object",

	ErrCodeSentenceIndexRange: "sentence index out of range",
	ErrCodeTimelineEmpty:      "timeline has no sentences",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode ("DOC", "REN", ...).
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
