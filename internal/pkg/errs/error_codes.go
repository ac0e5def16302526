/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrFormParseFailed indicates failure to parse multipart form data.
	ErrFormParseFailed = 1003

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Upload Business Logic Errors
const (
	// ErrFileTypeInvalid indicates that the uploaded file is not one of the allowed image types.
	ErrFileTypeInvalid = 2001

	// ErrFileSizeTooLarge indicates that the uploaded file exceeded the maximum allowed size.
	ErrFileSizeTooLarge = 2002

	// ErrFileMissing indicates that the multipart request carried no file field.
	ErrFileMissing = 2003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that persisting an uploaded file to the object store failed.
	ErrFileStorageFailed = 5001
)
