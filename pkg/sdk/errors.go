package wvadmin

import "github.com/raywlfun/WeaviateDBCluster/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound             = domain.ErrNotFound
	ErrObjectNotFound       = domain.ErrObjectNotFound
	ErrInvalidObjectID      = domain.ErrInvalidObjectID
	ErrInvalidEnumValue     = domain.ErrInvalidEnumValue
	ErrInvalidFieldValue    = domain.ErrInvalidFieldValue
	ErrInvalidPropertyValue = domain.ErrInvalidPropertyValue
	ErrValidation           = domain.ErrValidation
	ErrRemote               = domain.ErrRemote
)

// RemoteError is a failure reported by the cluster. Its Message is the
// server's own text. Use errors.As() to extract it.
type RemoteError = domain.RemoteError

// InvalidPropertyValueError lists the properties a save rejected.
type InvalidPropertyValueError = domain.InvalidPropertyValueError
