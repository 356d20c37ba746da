package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hatlonely/datafaker/schema"
)

// MongoSinkOptions MongoSink 构造选项
type MongoSinkOptions struct {
	// URI 连接串，为空时由下面的字段拼出
	URI string `cfg:"uri"`

	Host       string `cfg:"host"`
	Port       int    `cfg:"port"`
	Username   string `cfg:"username"`
	Password   string `cfg:"password"`
	AuthSource string `cfg:"authSource"`

	// Database 数据库名
	Database string `cfg:"database" validate:"required"`

	// Collection 集合名
	Collection string `cfg:"collection" validate:"required"`

	// Timeout 连接超时，默认 30s
	Timeout time.Duration `cfg:"timeout"`
}

// MongoSink 把每一行作为一个文档写入 MongoDB 集合
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoSinkWithOptions 创建 MongoDB 输出端
func NewMongoSinkWithOptions(opts *MongoSinkOptions) (*MongoSink, error) {
	if opts == nil {
		return nil, errors.New("options is nil")
	}
	if err := validate.Struct(opts); err != nil {
		return nil, errors.WithMessage(err, "invalid mongo sink options")
	}

	uri := opts.URI
	if uri == "" {
		host, port, authSource := opts.Host, opts.Port, opts.AuthSource
		if host == "" {
			host = "localhost"
		}
		if port == 0 {
			port = 27017
		}
		if authSource == "" {
			authSource = "admin"
		}
		if opts.Username != "" && opts.Password != "" {
			uri = fmt.Sprintf("mongodb://%s:%s@%s:%d/%s?authSource=%s",
				opts.Username, opts.Password, host, port, opts.Database, authSource)
		} else {
			uri = fmt.Sprintf("mongodb://%s:%d/%s", host, port, opts.Database)
		}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo.Connect failed")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping failed")
	}

	return &MongoSink{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Write 写出一张表，一行一个文档
func (s *MongoSink) Write(ctx context.Context, table *schema.Table) error {
	records := table.Records()
	if len(records) == 0 {
		return nil
	}

	docs := make([]any, len(records))
	for i, record := range records {
		docs[i] = record
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "insert many failed")
	}
	return nil
}

// Close 断开连接
func (s *MongoSink) Close() error {
	return errors.Wrap(s.client.Disconnect(context.Background()), "disconnect failed")
}
