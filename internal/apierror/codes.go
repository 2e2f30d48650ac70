package apierror

// Error type URIs following the urn:pulse:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:pulse:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:pulse:error:not_found"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:pulse:error:bad_request"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:pulse:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation = "Validation Error"
	TitleNotFound   = "Resource Not Found"
	TitleBadRequest = "Bad Request"
	TitleInternal   = "Internal Server Error"
)
