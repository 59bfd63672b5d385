package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapFirestoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", status.Error(codes.NotFound, "no doc"), ErrNotFound},
		{"already exists", status.Error(codes.AlreadyExists, "taken"), ErrAlreadyExists},
		{"deadline", status.Error(codes.DeadlineExceeded, "context deadline exceeded"), context.DeadlineExceeded},
		{"passthrough", ErrNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapFirestoreError(tt.err), tt.want)
		})
	}

	assert.NoError(t, mapFirestoreError(nil))

	other := status.Error(codes.Unavailable, "down")
	got := mapFirestoreError(other)
	assert.Equal(t, other, got)
	assert.False(t, errors.Is(got, context.DeadlineExceeded))
}
