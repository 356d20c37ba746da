package sink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewESSinkWithOptionsInvalid(t *testing.T) {
	_, err := NewESSinkWithOptions(nil)
	require.Error(t, err)

	_, err = NewESSinkWithOptions(&ESSinkOptions{Index: "users"})
	require.Error(t, err)

	_, err = NewESSinkWithOptions(&ESSinkOptions{Addresses: []string{"http://localhost:9200"}})
	require.Error(t, err)
}
