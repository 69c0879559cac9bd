package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	err := NewError(ErrSoldOut)
	require.Equal(t, ErrSoldOut, Code(err))
	require.Equal(t, "SOLD_OUT", err.Error())

	wrapped := fmt.Errorf("reserve: %w", err)
	require.Equal(t, ErrSoldOut, Code(wrapped))

	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
	require.Equal(t, ErrCode(""), Code(nil))
}
