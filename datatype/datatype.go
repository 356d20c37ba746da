package datatype

import (
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Datatype 数据类型接口，每种基础类型对应一个实现
// 实现根据构造时固定下来的参数生成随机值，构造之后不再持有其他状态
type Datatype interface {
	// Generate 生成一个该类型的随机值
	Generate() any
}

// Options 数据类型的通用构造参数
// 通过类型标签构造时使用，每种类型只提取自己能识别的字段，其余字段被忽略
type Options struct {
	// Length 字符串长度，仅 string 类型使用
	Length *int `cfg:"length"`

	// MinValue 数值下界，仅 int/integer/float 类型使用
	MinValue *float64 `cfg:"min"`

	// MaxValue 数值上界，仅 int/integer/float 类型使用
	MaxValue *float64 `cfg:"max"`

	// Categories 枚举值列表，仅 category 类型使用
	Categories []string `cfg:"categories"`

	// Rand 随机源，为空时使用包级默认随机源
	Rand *rand.Rand `cfg:"-"`
}

// Constructor 根据通用构造参数创建数据类型实例
type Constructor func(options *Options) (Datatype, error)

var constructorMap = map[string]Constructor{}

var validate = validator.New()

func init() {
	MustRegister(newStringTypeFromOptions, "string")
	MustRegister(newIntegerTypeFromOptions, "int", "integer")
	MustRegister(newFloatTypeFromOptions, "float")
	MustRegister(newCategoryTypeFromOptions, "category")
	MustRegister(newBooleanTypeFromOptions, "boolean")
}

// Register 将构造函数注册到一个或多个类型标签上，标签不区分大小写
// 重复注册相同的构造函数会被跳过，注册不同的构造函数返回错误
// 注册应该在 init 阶段完成，注册过程没有加锁
func Register(constructor Constructor, tags ...string) error {
	if constructor == nil {
		return errors.New("constructor is nil")
	}
	if len(tags) == 0 {
		return errors.New("no tags provided")
	}

	for _, tag := range tags {
		key := strings.ToLower(tag)
		if existing, ok := constructorMap[key]; ok {
			if reflect.ValueOf(existing).Pointer() == reflect.ValueOf(constructor).Pointer() {
				continue
			}
			return errors.Errorf("constructor for datatype %s already registered with different function", key)
		}
		constructorMap[key] = constructor
	}

	return nil
}

// MustRegister 注册失败时 panic
func MustRegister(constructor Constructor, tags ...string) {
	if err := Register(constructor, tags...); err != nil {
		panic(err)
	}
}

// New 根据类型标签构造数据类型实例，标签不区分大小写
// 标签未注册时返回 unknown datatype 错误
func New(tag string, options *Options) (Datatype, error) {
	constructor, ok := constructorMap[strings.ToLower(tag)]
	if !ok {
		return nil, errors.Errorf("unknown datatype: %s", tag)
	}
	if options == nil {
		options = &Options{}
	}

	return constructor(options)
}

// Has 判断类型标签是否已注册，标签不区分大小写
func Has(tag string) bool {
	_, ok := constructorMap[strings.ToLower(tag)]
	return ok
}

// Tags 返回当前注册的全部类型标签，按字典序排列
// 用于外部编辑器填充类型候选列表，不需要构造任何实例
func Tags() []string {
	tags := make([]string, 0, len(constructorMap))
	for tag := range constructorMap {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

var defaultRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// DefaultRand 返回包级共享的默认随机源
// 该随机源不是并发安全的，多 goroutine 同时生成数据时需要外部同步，
// 或者为每个列单独注入随机源
func DefaultRand() *rand.Rand {
	return defaultRand
}
