package fetch

import "fmt"

// FetchErrorType classifies fetch failures.
type FetchErrorType int

const (
	// DownloadFailed indicates the archive request returned a
	// non-success HTTP status or failed at the transport level.
	DownloadFailed FetchErrorType = iota
	// ExtractFailed indicates the downloaded archive could not be
	// extracted (corrupt or unexpected format).
	ExtractFailed
	// TemplateNotFoundInArchive indicates the archive was fetched but
	// does not contain the expected templates/<identifier> subtree.
	TemplateNotFoundInArchive
	// CacheWriteFailed indicates the extracted template could not be
	// committed to the local cache.
	CacheWriteFailed
)

// String returns the string representation of the error type.
func (t FetchErrorType) String() string {
	switch t {
	case DownloadFailed:
		return "DownloadFailed"
	case ExtractFailed:
		return "ExtractFailed"
	case TemplateNotFoundInArchive:
		return "TemplateNotFoundInArchive"
	case CacheWriteFailed:
		return "CacheWriteFailed"
	default:
		return "Unknown"
	}
}

// FetchError represents a failure while fetching a template archive.
type FetchError struct {
	// Type is the error type classification.
	Type FetchErrorType
	// URL is the archive URL involved.
	URL string
	// Message is the human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error [%s] for %s: %s (caused by: %v)",
			e.Type.String(), e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error [%s] for %s: %s", e.Type.String(), e.URL, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewFetchError creates a new FetchError.
func NewFetchError(typ FetchErrorType, url, message string, cause error) *FetchError {
	return &FetchError{
		Type:    typ,
		URL:     url,
		Message: message,
		Cause:   cause,
	}
}

// NewDownloadError creates a download failed error.
func NewDownloadError(url, message string, cause error) *FetchError {
	return NewFetchError(DownloadFailed, url, message, cause)
}

// NewExtractError creates an extraction failed error.
func NewExtractError(url string, cause error) *FetchError {
	return NewFetchError(ExtractFailed, url, "failed to extract archive", cause)
}

// NewNotFoundInArchiveError creates a missing-subdirectory error.
func NewNotFoundInArchiveError(url, subdir string) *FetchError {
	return NewFetchError(TemplateNotFoundInArchive, url,
		fmt.Sprintf("archive does not contain %q", subdir), nil)
}

// NewCacheWriteError creates a cache write error.
func NewCacheWriteError(url string, cause error) *FetchError {
	return NewFetchError(CacheWriteFailed, url, "failed to populate template cache", cause)
}
