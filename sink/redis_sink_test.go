package sink

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSink_Write(t *testing.T) {
	server := miniredis.RunT(t)

	s, err := NewRedisSinkWithOptions(&RedisSinkOptions{
		Endpoint: server.Addr(),
		Key:      "records",
	})
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), makeTable()))
	require.NoError(t, s.Close())

	values, err := server.List("records")
	require.NoError(t, err)
	require.Len(t, values, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(values[0]), &record))
	assert.Equal(t, "alice", record["Name"])
	assert.Equal(t, 30.0, record["Age"])

	require.NoError(t, json.Unmarshal([]byte(values[1]), &record))
	assert.Equal(t, "bob", record["Name"])
	assert.Nil(t, record["Email"])
}

func TestNewRedisSinkWithOptionsInvalid(t *testing.T) {
	_, err := NewRedisSinkWithOptions(nil)
	require.Error(t, err)

	_, err = NewRedisSinkWithOptions(&RedisSinkOptions{Endpoint: "localhost:6379"})
	require.Error(t, err)

	// 连不上的地址
	_, err = NewRedisSinkWithOptions(&RedisSinkOptions{Endpoint: "localhost:1", Key: "records"})
	require.Error(t, err)
}
