package ingestors

import (
	"fmt"

	"emontx-aggregator/internal/shared/svcerrors"
)

// IngestionLoop errors
const (
	codeSourceReadFailed = "ING_9000"
	codeSinkWriteFailed  = "ING_9001"
)

// errSourceReadFailed returns an error when the source stops producing lines.
func errSourceReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeSourceReadFailed, fmt.Errorf("sourceReadFailed: %w", cause))
}

// errSinkWriteFailed returns an error when a snapshot cannot be written.
func errSinkWriteFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeSinkWriteFailed, fmt.Errorf("sinkWriteFailed: %w", cause))
}

// IsSourceReadError reports whether err is a source read failure.
func IsSourceReadError(err error) bool {
	return svcerrors.HasCode(err, codeSourceReadFailed)
}

// IsSinkWriteError reports whether err is a sink write failure.
func IsSinkWriteError(err error) bool {
	return svcerrors.HasCode(err, codeSinkWriteFailed)
}
