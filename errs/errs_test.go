package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIllegalStateErrors(t *testing.T) {
	require.ErrorIs(t, ErrWriterNotOpen, ErrIllegalState)
	require.ErrorIs(t, ErrWriterClosed, ErrIllegalState)
	require.False(t, errors.Is(ErrWriterNotOpen, ErrWriterClosed))
	require.False(t, errors.Is(ErrInvalidArgument, ErrIllegalState))
}

func TestWrappedSentinels(t *testing.T) {
	err := fmt.Errorf("%w: curve cannot be nil", ErrInvalidArgument)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Contains(t, err.Error(), "curve cannot be nil")
}
