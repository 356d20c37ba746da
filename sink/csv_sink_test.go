package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSink_Write(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewCSVSinkWithOptions(&CSVSinkOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), makeTable()))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Age,Score,Active,Email", lines[0])
	assert.Equal(t, "alice,30,88.5,true,alice@example.com", lines[1])
	assert.Equal(t, "bob,25,91.25,false,", lines[2])
}

func TestCSVSink_NullValue(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewCSVSinkWithOptions(&CSVSinkOptions{Writer: &buf, NullValue: "NA", NoHeader: true})
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), makeTable()))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ",NA"))
}

func TestCSVSink_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := NewCSVSinkWithOptions(&CSVSinkOptions{FilePath: path})
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), makeTable()))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice,30")
}

func TestNewCSVSinkWithOptionsInvalid(t *testing.T) {
	_, err := NewCSVSinkWithOptions(nil)
	require.Error(t, err)

	_, err = NewCSVSinkWithOptions(&CSVSinkOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either filePath or writer is required")
}
