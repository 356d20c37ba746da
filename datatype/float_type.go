package datatype

import (
	"math"
	"math/rand"
)

// FloatTypeOptions FloatType 构造选项
// 边界的补全规则和 IntegerType 一致，上下界均为空时使用 [0.0, 100.0]
type FloatTypeOptions struct {
	// MinValue 下界
	MinValue *float64 `cfg:"min"`

	// MaxValue 上界
	MaxValue *float64 `cfg:"max"`

	// Rand 随机源，为空时使用包级默认随机源
	Rand *rand.Rand `cfg:"-"`
}

// FloatType 随机浮点类型，在 [minValue, maxValue] 区间内均匀取值，保留两位小数
// 注意和 IntegerType 不同，这里不校验边界的大小关系，min > max 时同样可以构造，
// 生成的值落在两个边界之间
type FloatType struct {
	minValue float64
	maxValue float64
	rand     *rand.Rand
}

// NewFloatTypeWithOptions 创建浮点类型
func NewFloatTypeWithOptions(options *FloatTypeOptions) (*FloatType, error) {
	if options == nil {
		options = &FloatTypeOptions{}
	}

	var minValue, maxValue float64
	switch {
	case options.MinValue == nil && options.MaxValue == nil:
		minValue, maxValue = 0.0, 100.0
	case options.MaxValue == nil:
		minValue = *options.MinValue
		maxValue = math.Max(100.0+minValue, 100.0)
	case options.MinValue == nil:
		maxValue = *options.MaxValue
		minValue = math.Min(maxValue-100.0, 0.0)
	default:
		minValue, maxValue = *options.MinValue, *options.MaxValue
	}

	return &FloatType{
		minValue: minValue,
		maxValue: maxValue,
		rand:     randOrDefault(options.Rand),
	}, nil
}

func newFloatTypeFromOptions(options *Options) (Datatype, error) {
	return NewFloatTypeWithOptions(&FloatTypeOptions{
		MinValue: options.MinValue,
		MaxValue: options.MaxValue,
		Rand:     options.Rand,
	})
}

// MinValue 返回下界
func (t *FloatType) MinValue() float64 {
	return t.minValue
}

// MaxValue 返回上界
func (t *FloatType) MaxValue() float64 {
	return t.maxValue
}

// Generate 生成边界之间的随机浮点数，四舍五入保留两位小数
func (t *FloatType) Generate() any {
	value := t.minValue + t.rand.Float64()*(t.maxValue-t.minValue)
	return math.Round(value*100) / 100
}
