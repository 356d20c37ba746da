package sink

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hatlonely/datafaker/schema"
)

// MsgPackSinkOptions MsgPackSink 构造选项
type MsgPackSinkOptions struct {
	// FilePath 输出文件路径，和 Writer 二选一
	FilePath string `cfg:"filePath"`

	// Writer 输出目标
	Writer io.Writer `cfg:"-"`
}

// MsgPackSink 把每一行编码成一条 msgpack 记录写出，记录是列名到值的映射
type MsgPackSink struct {
	encoder *msgpack.Encoder
	closer  io.Closer
}

// NewMsgPackSinkWithOptions 创建 msgpack 输出端
func NewMsgPackSinkWithOptions(options *MsgPackSinkOptions) (*MsgPackSink, error) {
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

	return &MsgPackSink{
		encoder: msgpack.NewEncoder(w),
		closer:  closer,
	}, nil
}

// Write 写出一张表，一行一条 msgpack 记录
func (s *MsgPackSink) Write(ctx context.Context, table *schema.Table) error {
	for _, record := range table.Records() {
		if err := s.encoder.Encode(record); err != nil {
			return errors.Wrap(err, "encode record failed")
		}
	}
	return nil
}

// Close 关闭底层文件
func (s *MsgPackSink) Close() error {
	if s.closer != nil {
		return errors.Wrap(s.closer.Close(), "close failed")
	}
	return nil
}
