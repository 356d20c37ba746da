package sink

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/schema"
)

// JSONLSinkOptions JSONLSink 构造选项
type JSONLSinkOptions struct {
	// FilePath 输出文件路径，和 Writer 二选一
	FilePath string `cfg:"filePath"`

	// Writer 输出目标
	Writer io.Writer `cfg:"-"`
}

// JSONLSink 把每一行写成一个 JSON 对象，对象键是列名，空值写成 null
// 存在重名列时后面的列覆盖前面的列
type JSONLSink struct {
	encoder *json.Encoder
	closer  io.Closer
}

// NewJSONLSinkWithOptions 创建 JSON Lines 输出端
func NewJSONLSinkWithOptions(options *JSONLSinkOptions) (*JSONLSink, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	var w io.Writer = options.Writer
	var closer io.Closer
	if w == nil {
		if options.FilePath == "" {
			return nil, errors.New("either filePath or writer is required")
		}
		file, err := os.Create(options.FilePath)
		if err != nil {
			return nil, errors.Wrapf(err, "create file %s failed", options.FilePath)
		}
		w, closer = file, file
	}

	return &JSONLSink{
		encoder: json.NewEncoder(w),
		closer:  closer,
	}, nil
}

// Write 写出一张表，一行一个 JSON 对象
func (s *JSONLSink) Write(ctx context.Context, table *schema.Table) error {
	for _, record := range table.Records() {
		if err := s.encoder.Encode(record); err != nil {
			return errors.Wrap(err, "encode record failed")
		}
	}
	return nil
}

// Close 关闭底层文件
func (s *JSONLSink) Close() error {
	if s.closer != nil {
		return errors.Wrap(s.closer.Close(), "close failed")
	}
	return nil
}
