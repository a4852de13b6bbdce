package models

import "errors"

// Error taxonomy shared by the repository, service and API layers.
var (
	// ErrUnauthorized means the caller is not a recognized admin.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means a state-machine violation, e.g. approving
	// a submission that is already terminal.
	ErrInvalidState = errors.New("invalid state")

	// ErrStoreUnavailable means the underlying store failed; any
	// in-flight multi-document write was rolled back.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUploadFailed means the blob store rejected or lost an upload.
	ErrUploadFailed = errors.New("upload failed")
)
