package http

import (
	"emontx-aggregator/internal/shared/svcerrors"
)

// Status endpoint errors
const (
	codeSnapshotNotFound = "SNP_1000"
	codeInvalidFormat    = "SNP_1001"
)

// errSnapshotNotFound returns an error when no cycle has completed yet.
func errSnapshotNotFound() *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeSnapshotNotFound, "no snapshot written yet", nil)
}

// errInvalidFormat returns an error for an unsupported ?format value.
func errInvalidFormat(format string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidFormat, "unsupported format: "+format, nil)
}
