// Package sink 负责把生成结果表写出到外部载体
// 每种载体对应一个 Sink 实现，通过名字注册表按配置挑选实现
package sink

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/schema"
)

// Sink 生成数据的输出端
type Sink interface {
	// Write 写出一张表
	Write(ctx context.Context, table *schema.Table) error
	// Close 关闭并释放资源
	Close() error
}

// Constructor 根据选项创建 Sink，选项的具体类型由实现决定
type Constructor func(options any) (Sink, error)

var constructorMap = map[string]Constructor{}

var validate = validator.New()

func init() {
	MustRegister("csv", func(options any) (Sink, error) {
		o, err := optionsAs[CSVSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewCSVSinkWithOptions(o)
	})
	MustRegister("jsonl", func(options any) (Sink, error) {
		o, err := optionsAs[JSONLSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewJSONLSinkWithOptions(o)
	})
	MustRegister("msgpack", func(options any) (Sink, error) {
		o, err := optionsAs[MsgPackSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewMsgPackSinkWithOptions(o)
	})
	MustRegister("bolt", func(options any) (Sink, error) {
		o, err := optionsAs[BoltSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewBoltSinkWithOptions(o)
	})
	MustRegister("sql", func(options any) (Sink, error) {
		o, err := optionsAs[SQLSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewSQLSinkWithOptions(o)
	})
	MustRegister("mongo", func(options any) (Sink, error) {
		o, err := optionsAs[MongoSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewMongoSinkWithOptions(o)
	})
	MustRegister("redis", func(options any) (Sink, error) {
		o, err := optionsAs[RedisSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewRedisSinkWithOptions(o)
	})
	MustRegister("es", func(options any) (Sink, error) {
		o, err := optionsAs[ESSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewESSinkWithOptions(o)
	})
	MustRegister("observable", func(options any) (Sink, error) {
		o, err := optionsAs[ObservableSinkOptions](options)
		if err != nil {
			return nil, err
		}
		return NewObservableSinkWithOptions(o)
	})
}

// Register 注册 Sink 构造函数，名字不区分大小写，重复注册返回错误
func Register(name string, constructor Constructor) error {
	if constructor == nil {
		return errors.New("constructor is nil")
	}
	key := strings.ToLower(name)
	if _, ok := constructorMap[key]; ok {
		return errors.Errorf("sink %s already registered", key)
	}
	constructorMap[key] = constructor
	return nil
}

// MustRegister 注册失败时 panic
func MustRegister(name string, constructor Constructor) {
	if err := Register(name, constructor); err != nil {
		panic(err)
	}
}

// NewSinkWithOptions 根据名字构造 Sink，名字未注册时返回错误
func NewSinkWithOptions(name string, options any) (Sink, error) {
	constructor, ok := constructorMap[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown sink: %s", name)
	}
	return constructor(options)
}

// Types 返回当前注册的全部 Sink 名字，按字典序排列
func Types() []string {
	names := make([]string, 0, len(constructorMap))
	for name := range constructorMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// optionsAs 将注册表路径传入的 any 选项还原成具体类型
func optionsAs[T any](options any) (*T, error) {
	switch v := options.(type) {
	case nil:
		return nil, nil
	case *T:
		return v, nil
	case T:
		return &v, nil
	default:
		var t T
		return nil, errors.Errorf("invalid options type: %T, expected %T", options, &t)
	}
}
