package datatype

import (
	"math/rand"

	"github.com/pkg/errors"
)

// CategoryTypeOptions CategoryType 构造选项
type CategoryTypeOptions struct {
	// Categories 枚举值列表，不能为空，重复的值会被去重
	Categories []string `cfg:"categories" validate:"required,min=1"`

	// Rand 随机源，为空时使用包级默认随机源
	Rand *rand.Rand `cfg:"-"`
}

// CategoryType 枚举类型，从给定的值里随机挑选
// 构造时去重，保留每个值首次出现的顺序
type CategoryType struct {
	categories []string
	rand       *rand.Rand
}

// NewCategoryTypeWithOptions 创建枚举类型，枚举值列表为空时返回错误
func NewCategoryTypeWithOptions(options *CategoryTypeOptions) (*CategoryType, error) {
	if options == nil {
		options = &CategoryTypeOptions{}
	}
	if err := validate.Struct(options); err != nil {
		return nil, errors.WithMessage(err, "categories cannot be empty")
	}

	set := make(map[string]struct{}, len(options.Categories))
	categories := make([]string, 0, len(options.Categories))
	for _, category := range options.Categories {
		if _, ok := set[category]; ok {
			continue
		}
		set[category] = struct{}{}
		categories = append(categories, category)
	}

	return &CategoryType{
		categories: categories,
		rand:       randOrDefault(options.Rand),
	}, nil
}

func newCategoryTypeFromOptions(options *Options) (Datatype, error) {
	return NewCategoryTypeWithOptions(&CategoryTypeOptions{
		Categories: options.Categories,
		Rand:       options.Rand,
	})
}

// Categories 返回去重后的枚举值列表
func (t *CategoryType) Categories() []string {
	categories := make([]string, len(t.categories))
	copy(categories, t.categories)
	return categories
}

// Generate 从枚举值里随机返回一个
func (t *CategoryType) Generate() any {
	return t.categories[t.rand.Intn(len(t.categories))]
}
