package schema

import (
	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/datatype"
)

// TableSchema 一张表的生成模式，由有序的列模式组成
// 列顺序决定输出列顺序，允许为空，也允许存在重名列
type TableSchema struct {
	columns []*ColumnSchema
}

// NewTableSchema 创建表模式
func NewTableSchema(columns ...*ColumnSchema) *TableSchema {
	return &TableSchema{columns: columns}
}

// ColumnConfig 表格化配置中的一行，每行描述一个列
// 外部编辑器产出的就是这种行式配置，空缺的单元格对应空指针
type ColumnConfig struct {
	// Name 列名
	Name string `cfg:"name" json:"name" yaml:"name" toml:"name"`

	// Datatype 类型标签，不区分大小写，为空时列使用默认字符串类型
	Datatype string `cfg:"datatype" json:"datatype" yaml:"datatype" toml:"datatype"`

	// Length 字符串长度参数
	Length *int `cfg:"length" json:"length" yaml:"length" toml:"length"`

	// Domain 枚举值列表
	Domain []string `cfg:"domain" json:"domain" yaml:"domain" toml:"domain"`

	// Max 数值上界
	Max *float64 `cfg:"max" json:"max" yaml:"max" toml:"max"`

	// Min 数值下界
	Min *float64 `cfg:"min" json:"min" yaml:"min" toml:"min"`

	// Completeness 非空比例，默认 1.0
	Completeness *float64 `cfg:"completeness" json:"completeness" yaml:"completeness" toml:"completeness"`
}

// NewColumnSchemaFromConfig 由一行表格化配置构造列
func NewColumnSchemaFromConfig(config *ColumnConfig) (*ColumnSchema, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}

	var dt any
	if config.Datatype != "" {
		dt = config.Datatype
	}

	return NewColumnSchemaWithOptions(&ColumnSchemaOptions{
		Name:         config.Name,
		Datatype:     dt,
		Completeness: config.Completeness,
		Type: &datatype.Options{
			Length:     config.Length,
			MinValue:   config.Min,
			MaxValue:   config.Max,
			Categories: config.Domain,
		},
	})
}

// NewTableSchemaFromConfigs 由表格化配置构造表模式，每行配置对应一个列
// 任意一行构造失败时整个构造失败
func NewTableSchemaFromConfigs(configs []*ColumnConfig) (*TableSchema, error) {
	columns := make([]*ColumnSchema, 0, len(configs))
	for i, config := range configs {
		column, err := NewColumnSchemaFromConfig(config)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid column config at row %d", i)
		}
		columns = append(columns, column)
	}
	return NewTableSchema(columns...), nil
}

// AddColumn 追加一个列，参数可以是 *ColumnSchema，也可以是列名字符串
// 传入列名时包装成默认字符串类型的列
func (t *TableSchema) AddColumn(column any) error {
	switch v := column.(type) {
	case *ColumnSchema:
		if v == nil {
			return errors.New("column is nil")
		}
		t.columns = append(t.columns, v)
	case string:
		c, err := NewColumnSchema(v)
		if err != nil {
			return errors.WithMessage(err, "create column failed")
		}
		t.columns = append(t.columns, c)
	default:
		return errors.Errorf("invalid column: %v, expected a *ColumnSchema or a name string", column)
	}
	return nil
}

// RemoveColumn 按名字删除列，重名列会被一起删除，没有匹配时不做任何事
func (t *TableSchema) RemoveColumn(name string) {
	columns := t.columns[:0]
	for _, column := range t.columns {
		if column.Name() != name {
			columns = append(columns, column)
		}
	}
	t.columns = columns
}

// SelectColumns 筛选出名字在给定列表里的列，返回新的表模式，不修改原模式
// 保留列之间的相对顺序
func (t *TableSchema) SelectColumns(names []string) *TableSchema {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	var columns []*ColumnSchema
	for _, column := range t.columns {
		if _, ok := set[column.Name()]; ok {
			columns = append(columns, column)
		}
	}
	return NewTableSchema(columns...)
}

// Columns 返回列模式列表
func (t *TableSchema) Columns() []*ColumnSchema {
	columns := make([]*ColumnSchema, len(t.columns))
	copy(columns, t.columns)
	return columns
}

// Generate 生成指定行数的数据
// 没有定义任何列时返回错误；每一行按列顺序依次调用各列的 Generate
func (t *TableSchema) Generate(numRows int) (*Table, error) {
	if len(t.columns) == 0 {
		return nil, errors.New("no columns defined in the table schema")
	}

	names := make([]string, len(t.columns))
	for i, column := range t.columns {
		names[i] = column.Name()
	}

	rows := make([][]any, 0, max(numRows, 0))
	for i := 0; i < numRows; i++ {
		row := make([]any, len(t.columns))
		for j, column := range t.columns {
			row[j] = column.Generate()
		}
		rows = append(rows, row)
	}

	return NewTable(names, rows), nil
}
