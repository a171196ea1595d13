package svcerrors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("DEC_1000", "malformed line", nil),
			wantErr: NewInvalidArgumentError("DEC_1000", "malformed line", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("ING_9000", nil)),
			wantErr: NewInternalError("ING_9000", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestServiceError_UnwrapAndHasCode(t *testing.T) {
	err := fmt.Errorf("loop: %w", NewInternalError("ING_9000", io.EOF))

	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, HasCode(err, "ING_9000"))
	assert.False(t, HasCode(err, "ING_9001"))
	assert.False(t, HasCode(io.EOF, "ING_9000"))
	assert.Contains(t, err.Error(), "EOF")
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("SNP_1000", "no snapshot yet", nil)

	assert.Equal(t, 404, err.HttpStatusCode)
	assert.Equal(t, "not_found", err.Category)
	assert.False(t, err.IsInternalError())
	assert.True(t, err.IsNotFound())
	assert.Equal(t, "SNP_1000: no snapshot yet", err.Error())
}
