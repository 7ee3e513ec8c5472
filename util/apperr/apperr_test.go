package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeExtractor(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrNotFound, "vehicle not found"))
	require.Equal(t, ErrNotFound, Code(err))
	require.Equal(t, "vehicle not found", Message(err))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(ErrConflict, cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, ErrConflict, Code(err))
	require.Equal(t, "CONFLICT: duplicate key", err.Error())
}
