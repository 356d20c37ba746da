package sink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMongoSinkWithOptionsInvalid(t *testing.T) {
	_, err := NewMongoSinkWithOptions(nil)
	require.Error(t, err)

	_, err = NewMongoSinkWithOptions(&MongoSinkOptions{Database: "test"})
	require.Error(t, err)

	_, err = NewMongoSinkWithOptions(&MongoSinkOptions{Collection: "users"})
	require.Error(t, err)
}
