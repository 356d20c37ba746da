package sink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/hatlonely/datafaker/schema"
)

// RedisSinkOptions RedisSink 构造选项
type RedisSinkOptions struct {
	// Endpoint host:port 地址
	Endpoint string `cfg:"endpoint" validate:"required"`

	// Key 数据写入的列表键
	Key string `cfg:"key" validate:"required"`

	// Username 用户名，Redis 6.0 及以上使用 ACL 时需要
	Username string `cfg:"username"`

	// Password 可选密码
	Password string `cfg:"password"`

	// DB 连接后选择的数据库
	DB int `cfg:"db"`

	// DialTimeout 建立连接的超时时间，默认 5s
	DialTimeout time.Duration `cfg:"dialTimeout"`
}

// RedisSink 把每一行编码成 JSON 依次 RPUSH 到列表键里
type RedisSink struct {
	client *redis.Client
	key    string
}

// NewRedisSinkWithOptions 创建 Redis 输出端
func NewRedisSinkWithOptions(options *RedisSinkOptions) (*RedisSink, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if err := validate.Struct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid redis sink options")
	}

	dialTimeout := options.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        options.Endpoint,
		Username:    options.Username,
		Password:    options.Password,
		DB:          options.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}

	return &RedisSink{
		client: client,
		key:    options.Key,
	}, nil
}

// Write 写出一张表，一行一条列表元素，整张表在一个 pipeline 里提交
func (s *RedisSink) Write(ctx context.Context, table *schema.Table) error {
	pipeline := s.client.Pipeline()
	for _, record := range table.Records() {
		data, err := json.Marshal(record)
		if err != nil {
			return errors.Wrap(err, "marshal record failed")
		}
		pipeline.RPush(ctx, s.key, data)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		return errors.Wrap(err, "pipeline exec failed")
	}
	return nil
}

// Close 关闭客户端
func (s *RedisSink) Close() error {
	return errors.Wrap(s.client.Close(), "close client failed")
}
