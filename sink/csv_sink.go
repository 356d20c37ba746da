package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/schema"
)

// CSVSinkOptions CSVSink 构造选项
type CSVSinkOptions struct {
	// FilePath 输出文件路径，和 Writer 二选一，都给出时优先使用 Writer
	FilePath string `cfg:"filePath"`

	// NullValue 空值的输出占位符，默认输出空字符串
	NullValue string `cfg:"nullValue"`

	// NoHeader 不输出表头行
	NoHeader bool `cfg:"noHeader"`

	// Writer 输出目标，用于写到文件之外的地方
	Writer io.Writer `cfg:"-"`
}

// CSVSink 把生成结果表写成 CSV，第一行是列名
type CSVSink struct {
	writer    *csv.Writer
	closer    io.Closer
	nullValue string
	noHeader  bool
}

// NewCSVSinkWithOptions 创建 CSV 输出端
func NewCSVSinkWithOptions(options *CSVSinkOptions) (*CSVSink, error) {
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

	return &CSVSink{
		writer:    csv.NewWriter(w),
		closer:    closer,
		nullValue: options.NullValue,
		noHeader:  options.NoHeader,
	}, nil
}

// Write 写出一张表
func (s *CSVSink) Write(ctx context.Context, table *schema.Table) error {
	if !s.noHeader {
		if err := s.writer.Write(table.ColumnNames()); err != nil {
			return errors.Wrap(err, "write header failed")
		}
	}

	record := make([]string, table.NumColumns())
	for _, row := range table.Rows() {
		for i, cell := range row {
			record[i] = s.formatCell(cell)
		}
		if err := s.writer.Write(record); err != nil {
			return errors.Wrap(err, "write record failed")
		}
	}

	s.writer.Flush()
	return errors.Wrap(s.writer.Error(), "flush failed")
}

func (s *CSVSink) formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return s.nullValue
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Close 刷出缓冲并关闭底层文件
func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return errors.Wrap(err, "flush failed")
	}
	if s.closer != nil {
		return errors.Wrap(s.closer.Close(), "close failed")
	}
	return nil
}
