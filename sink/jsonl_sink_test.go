package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLSink_Write(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewJSONLSinkWithOptions(&JSONLSinkOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), makeTable()))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "alice", record["Name"])
	assert.Equal(t, 30.0, record["Age"])
	assert.Equal(t, true, record["Active"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Contains(t, record, "Email")
	assert.Nil(t, record["Email"])
}

func TestNewJSONLSinkWithOptionsInvalid(t *testing.T) {
	_, err := NewJSONLSinkWithOptions(nil)
	require.Error(t, err)

	_, err = NewJSONLSinkWithOptions(&JSONLSinkOptions{})
	require.Error(t, err)
}
