package datatype

import "math/rand"

// BooleanTypeOptions BooleanType 构造选项，布尔类型没有参数
type BooleanTypeOptions struct {
	// Rand 随机源，为空时使用包级默认随机源
	Rand *rand.Rand `cfg:"-"`
}

// BooleanType 随机布尔类型
type BooleanType struct {
	rand *rand.Rand
}

// NewBooleanTypeWithOptions 创建布尔类型
func NewBooleanTypeWithOptions(options *BooleanTypeOptions) (*BooleanType, error) {
	if options == nil {
		options = &BooleanTypeOptions{}
	}

	return &BooleanType{
		rand: randOrDefault(options.Rand),
	}, nil
}

func newBooleanTypeFromOptions(options *Options) (Datatype, error) {
	return NewBooleanTypeWithOptions(&BooleanTypeOptions{Rand: options.Rand})
}

// Generate 等概率生成 true 或者 false
func (t *BooleanType) Generate() any {
	return t.rand.Intn(2) == 0
}
