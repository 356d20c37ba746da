package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/schema"
)

// ESSinkOptions ESSink 构造选项
type ESSinkOptions struct {
	// Addresses 节点地址列表
	Addresses []string `cfg:"addresses" validate:"required,min=1"`

	// Index 目标索引
	Index string `cfg:"index" validate:"required"`

	Username string `cfg:"username"`
	Password string `cfg:"password"`
}

// ESSink 把每一行作为一个文档写入 Elasticsearch 索引
type ESSink struct {
	client *elasticsearch.Client
	index  string
}

// NewESSinkWithOptions 创建 Elasticsearch 输出端
func NewESSinkWithOptions(options *ESSinkOptions) (*ESSink, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if err := validate.Struct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid es sink options")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: options.Addresses,
		Username:  options.Username,
		Password:  options.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create elasticsearch client failed")
	}

	res, err := client.Info()
	if err != nil {
		return nil, errors.Wrap(err, "connect to elasticsearch failed")
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.Errorf("elasticsearch connection error: %s", res.String())
	}

	return &ESSink{
		client: client,
		index:  options.Index,
	}, nil
}

// Write 写出一张表，一行一个文档
func (s *ESSink) Write(ctx context.Context, table *schema.Table) error {
	for _, record := range table.Records() {
		body, err := json.Marshal(record)
		if err != nil {
			return errors.Wrap(err, "marshal record failed")
		}

		req := esapi.IndexRequest{
			Index: s.index,
			Body:  bytes.NewReader(body),
		}
		res, err := req.Do(ctx, s.client)
		if err != nil {
			return errors.Wrap(err, "index request failed")
		}
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
		if res.IsError() {
			return errors.Errorf("index document failed: %s", res.Status())
		}
	}
	return nil
}

// Close 无资源需要释放
func (s *ESSink) Close() error {
	return nil
}
