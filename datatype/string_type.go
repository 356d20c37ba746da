package datatype

import (
	"math/rand"

	"github.com/pkg/errors"
)

// StringTypeOptions StringType 构造选项
type StringTypeOptions struct {
	// Length 生成字符串的长度，为 0 时使用默认值 10
	Length int `cfg:"length" validate:"gte=0"`

	// Rand 随机源，为空时使用包级默认随机源
	Rand *rand.Rand `cfg:"-"`
}

// StringType 随机字符串类型，生成由字母和数字组成的定长字符串
type StringType struct {
	length int
	rand   *rand.Rand
}

const stringTypeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewStringType 创建默认长度的字符串类型
func NewStringType() *StringType {
	t, err := NewStringTypeWithOptions(nil)
	if err != nil {
		panic(err)
	}
	return t
}

// NewStringTypeWithOptions 创建字符串类型
func NewStringTypeWithOptions(options *StringTypeOptions) (*StringType, error) {
	if options == nil {
		options = &StringTypeOptions{}
	}
	if err := validate.Struct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid string type options")
	}

	length := options.Length
	if length == 0 {
		length = 10
	}

	return &StringType{
		length: length,
		rand:   randOrDefault(options.Rand),
	}, nil
}

func newStringTypeFromOptions(options *Options) (Datatype, error) {
	o := &StringTypeOptions{Rand: options.Rand}
	if options.Length != nil {
		if *options.Length <= 0 {
			return nil, errors.Errorf("length must be a positive integer, got %d", *options.Length)
		}
		o.Length = *options.Length
	}
	return NewStringTypeWithOptions(o)
}

// Length 返回生成字符串的长度
func (t *StringType) Length() int {
	return t.length
}

// Generate 生成一个定长随机字符串
func (t *StringType) Generate() any {
	buf := make([]byte, t.length)
	for i := range buf {
		buf[i] = stringTypeCharset[t.rand.Intn(len(stringTypeCharset))]
	}
	return string(buf)
}

func randOrDefault(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return defaultRand
}
