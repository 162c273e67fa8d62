package marksearch

import "github.com/kailas-cloud/marksearch/internal/domain"

// ErrInvalidInput is returned for a nil document slice or a nil document.
// Use errors.Is() to check.
var ErrInvalidInput = domain.ErrInvalidInput

// InvalidDocumentError reports the index of a nil document. It matches ErrInvalidInput.
type InvalidDocumentError = domain.InvalidDocumentError
