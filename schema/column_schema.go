package schema

import (
	"math"
	"math/rand"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/datatype"
)

// ColumnSchemaOptions ColumnSchema 构造选项
type ColumnSchemaOptions struct {
	// Name 列名，必填。表内不要求唯一，重名列在删除和筛选时会被一起处理
	Name string `cfg:"name" validate:"required"`

	// Datatype 列的数据类型，支持三种形式：
	//   - nil: 默认使用字符串类型，此时 Type 里的类型参数被忽略
	//   - string: 类型标签，通过 datatype 注册表构造，标签不区分大小写
	//   - datatype.Datatype: 已构造的类型实例，原样使用
	// 其他形式返回错误
	Datatype any `cfg:"datatype"`

	// Completeness 非空比例，取值范围 [0,1]，表示生成值不被替换成空值的概率
	// 为空或者 NaN 时按 1.0 处理，即不产生空值
	Completeness *float64 `cfg:"completeness"`

	// GeneratorRule 自定义生成规则，非空时完全取代数据类型的默认规则
	GeneratorRule func() any `cfg:"-"`

	// Type 通过类型标签构造时的类型参数，未被对应类型识别的字段被忽略
	Type *datatype.Options `cfg:"options"`

	// Rand 随机源，为空时使用 datatype 包级默认随机源
	// 通过类型标签构造时同一随机源也会传给类型实例
	Rand *rand.Rand `cfg:"-"`
}

// ColumnSchema 单个列的生成单元，由列名、数据类型、非空比例和可选的自定义规则组成
// 构造之后不可变
type ColumnSchema struct {
	name          string
	datatype      datatype.Datatype
	completeness  float64
	generatorRule func() any
	rand          *rand.Rand
}

var validate = validator.New()

// NewColumnSchema 创建一个默认字符串类型的列
func NewColumnSchema(name string) (*ColumnSchema, error) {
	return NewColumnSchemaWithOptions(&ColumnSchemaOptions{Name: name})
}

// NewColumnSchemaWithOptions 创建列
// 类型标签未注册、类型参数非法或者 Datatype 形式不合法时立即返回错误，不会推迟到生成阶段
func NewColumnSchemaWithOptions(options *ColumnSchemaOptions) (*ColumnSchema, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if err := validate.Struct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid column schema options")
	}

	r := options.Rand
	if r == nil {
		r = datatype.DefaultRand()
	}

	var dt datatype.Datatype
	switch v := options.Datatype.(type) {
	case nil:
		t, err := datatype.NewStringTypeWithOptions(&datatype.StringTypeOptions{Rand: r})
		if err != nil {
			return nil, errors.WithMessage(err, "create default string type failed")
		}
		dt = t
	case string:
		typeOptions := options.Type
		if typeOptions == nil {
			typeOptions = &datatype.Options{}
		}
		if typeOptions.Rand == nil {
			typeOptions.Rand = r
		}
		t, err := datatype.New(v, typeOptions)
		if err != nil {
			return nil, errors.WithMessagef(err, "create datatype for column %s failed", options.Name)
		}
		dt = t
	case datatype.Datatype:
		dt = v
	default:
		return nil, errors.Errorf("invalid datatype: %v, expected a Datatype instance or a string tag", v)
	}

	completeness := 1.0
	if options.Completeness != nil && !math.IsNaN(*options.Completeness) {
		completeness = *options.Completeness
	}
	if completeness < 0 || completeness > 1 {
		return nil, errors.Errorf("completeness must be in [0, 1], got %v", completeness)
	}

	return &ColumnSchema{
		name:          options.Name,
		datatype:      dt,
		completeness:  completeness,
		generatorRule: options.GeneratorRule,
		rand:          r,
	}, nil
}

// Name 返回列名
func (c *ColumnSchema) Name() string {
	return c.name
}

// Datatype 返回列的数据类型实例
func (c *ColumnSchema) Datatype() datatype.Datatype {
	return c.datatype
}

// Completeness 返回非空比例
func (c *ColumnSchema) Completeness() float64 {
	return c.completeness
}

// Generate 生成一个值
// 先做一次均匀采样，completeness 小于 1.0 且采样值超过 completeness 时返回 nil；
// completeness 等于 1.0 时无论采样结果如何都不会返回 nil。
// 否则优先使用自定义生成规则，没有自定义规则时使用数据类型的默认规则
func (c *ColumnSchema) Generate() any {
	sample := c.rand.Float64()
	if c.completeness < 1.0 && sample > c.completeness {
		return nil
	}

	if c.generatorRule != nil {
		return c.generatorRule()
	}

	return c.datatype.Generate()
}
