package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer = 1000
	ErrInvalidParams  = 1001
	ErrNotFound       = 1002
	ErrBadRequest     = 1007

	// Search errors (2000-2999)
	ErrSearchEmptyTopic        = 2000
	ErrSearchInvalidMode       = 2001
	ErrSearchMissingCredential = 2002
	ErrSearchEmptyResponse     = 2003
	ErrSearchMalformed         = 2004
	ErrSearchMalformedDeep     = 2005
	ErrSearchProviderFailed    = 2006
	ErrSearchRateLimited       = 2007

	// Note errors (3000-3999)
	ErrNoteNotFound     = 3000
	ErrNoteInvalidInput = 3001
	ErrNoteStoreFailed  = 3002

	// Markdown errors (4000-4999)
	ErrMarkdownInvalidDialect = 4000
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer: {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:  {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:       {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrBadRequest:     {ErrBadRequest, http.StatusBadRequest, "Bad request"},

	// Search errors
	ErrSearchEmptyTopic:        {ErrSearchEmptyTopic, http.StatusBadRequest, "Search topic is required"},
	ErrSearchInvalidMode:       {ErrSearchInvalidMode, http.StatusBadRequest, "Invalid search mode"},
	ErrSearchMissingCredential: {ErrSearchMissingCredential, http.StatusServiceUnavailable, "AI provider credential is not configured"},
	ErrSearchEmptyResponse:     {ErrSearchEmptyResponse, http.StatusBadGateway, "No response from AI provider"},
	ErrSearchMalformed:         {ErrSearchMalformed, http.StatusBadGateway, "Malformed AI response"},
	ErrSearchMalformedDeep:     {ErrSearchMalformedDeep, http.StatusBadGateway, "Malformed deep analysis response"},
	ErrSearchProviderFailed:    {ErrSearchProviderFailed, http.StatusBadGateway, "AI provider request failed"},
	ErrSearchRateLimited:       {ErrSearchRateLimited, http.StatusTooManyRequests, "AI provider rate limit exceeded"},

	// Note errors
	ErrNoteNotFound:     {ErrNoteNotFound, http.StatusNotFound, "Note not found"},
	ErrNoteInvalidInput: {ErrNoteInvalidInput, http.StatusBadRequest, "Invalid note input"},
	ErrNoteStoreFailed:  {ErrNoteStoreFailed, http.StatusInternalServerError, "Note storage operation failed"},

	// Markdown errors
	ErrMarkdownInvalidDialect: {ErrMarkdownInvalidDialect, http.StatusBadRequest, "Unsupported markdown dialect"},
}

// lookup falls back to ErrInternalServer for unknown codes
func lookup(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return lookup(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return lookup(code).Message
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// IsServerError checks if the code represents a server error (5xx)
func IsServerError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
