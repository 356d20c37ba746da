package sink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatlonely/datafaker/schema"
)

func makeTable() *schema.Table {
	return schema.NewTable(
		[]string{"Name", "Age", "Score", "Active", "Email"},
		[][]any{
			{"alice", 30, 88.5, true, "alice@example.com"},
			{"bob", 25, 91.25, false, nil},
		},
	)
}

func TestNewSinkWithOptions(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewSinkWithOptions("csv", &CSVSinkOptions{Writer: &buf})
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NoError(t, s.Close())

	// 名字不区分大小写
	s, err = NewSinkWithOptions("JSONL", JSONLSinkOptions{Writer: &buf})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestNewSinkWithOptionsUnknown(t *testing.T) {
	_, err := NewSinkWithOptions("kafka", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sink: kafka")
}

func TestNewSinkWithOptionsInvalidType(t *testing.T) {
	_, err := NewSinkWithOptions("csv", 123)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options type")
}

func TestRegisterDuplicate(t *testing.T) {
	err := Register("csv", func(options any) (Sink, error) { return nil, nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	err = Register("custom", nil)
	require.Error(t, err)
}

func TestTypes(t *testing.T) {
	types := Types()
	assert.GreaterOrEqual(t, len(types), 9)
	for _, name := range []string{"csv", "jsonl", "msgpack", "bolt", "sql", "mongo", "redis", "es", "observable"} {
		assert.Contains(t, types, name)
	}
	assert.IsIncreasing(t, types)
}
