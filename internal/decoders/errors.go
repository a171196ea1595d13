package decoders

import (
	"emontx-aggregator/internal/shared/svcerrors"
)

const (
	codeDecodeFailed = "DEC_1000"
)

// errDecodeFailed returns the error for a line that is not a sensor record.
func errDecodeFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeDecodeFailed, msg, cause)
}

// IsDecodeError reports whether err means "skip this line".
func IsDecodeError(err error) bool {
	return svcerrors.HasCode(err, codeDecodeFailed)
}
