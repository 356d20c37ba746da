package datatype

import (
	"math/rand"

	"github.com/pkg/errors"
)

// IntegerTypeOptions IntegerType 构造选项
// 上下界均为空时使用 [0, 100]，只给出一侧时另一侧取宽度为 100 的对称窗口：
// 只有下界时上界为 max(100+min, 100)，只有上界时下界为 min(max-100, 0)
type IntegerTypeOptions struct {
	// MinValue 下界（包含）
	MinValue *int `cfg:"min"`

	// MaxValue 上界（包含）
	MaxValue *int `cfg:"max"`

	// Rand 随机源，为空时使用包级默认随机源
	Rand *rand.Rand `cfg:"-"`
}

// IntegerType 随机整数类型，在 [minValue, maxValue] 闭区间内均匀取值
type IntegerType struct {
	minValue int
	maxValue int
	rand     *rand.Rand
}

// NewIntegerTypeWithOptions 创建整数类型
// 补全默认边界之后要求 minValue < maxValue，不满足时返回错误
func NewIntegerTypeWithOptions(options *IntegerTypeOptions) (*IntegerType, error) {
	if options == nil {
		options = &IntegerTypeOptions{}
	}

	var minValue, maxValue int
	switch {
	case options.MinValue == nil && options.MaxValue == nil:
		minValue, maxValue = 0, 100
	case options.MaxValue == nil:
		minValue = *options.MinValue
		maxValue = max(100+minValue, 100)
	case options.MinValue == nil:
		maxValue = *options.MaxValue
		minValue = min(maxValue-100, 0)
	default:
		minValue, maxValue = *options.MinValue, *options.MaxValue
	}

	if minValue >= maxValue {
		return nil, errors.Errorf("min_value must be less than max_value, got [%d, %d]", minValue, maxValue)
	}

	return &IntegerType{
		minValue: minValue,
		maxValue: maxValue,
		rand:     randOrDefault(options.Rand),
	}, nil
}

func newIntegerTypeFromOptions(options *Options) (Datatype, error) {
	o := &IntegerTypeOptions{Rand: options.Rand}
	if options.MinValue != nil {
		minValue := int(*options.MinValue)
		o.MinValue = &minValue
	}
	if options.MaxValue != nil {
		maxValue := int(*options.MaxValue)
		o.MaxValue = &maxValue
	}
	return NewIntegerTypeWithOptions(o)
}

// MinValue 返回下界
func (t *IntegerType) MinValue() int {
	return t.minValue
}

// MaxValue 返回上界
func (t *IntegerType) MaxValue() int {
	return t.maxValue
}

// Generate 生成 [minValue, maxValue] 内的随机整数
func (t *IntegerType) Generate() any {
	return t.minValue + t.rand.Intn(t.maxValue-t.minValue+1)
}
