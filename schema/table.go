package schema

// Table 生成结果，一张按列名标记的二维表
// 列顺序和生成时的模式顺序一致，空值用 nil 表示
type Table struct {
	names []string
	rows  [][]any
}

// NewTable 由列名和行数据创建表
func NewTable(names []string, rows [][]any) *Table {
	return &Table{names: names, rows: rows}
}

// ColumnNames 返回列名列表，顺序和模式顺序一致
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// NumRows 返回行数
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns 返回列数
func (t *Table) NumColumns() int {
	return len(t.names)
}

// Rows 返回行数据，按行优先排列，单元格顺序和列名顺序一致
func (t *Table) Rows() [][]any {
	return t.rows
}

// Records 返回按列名索引的行视图
// 存在重名列时后面的列覆盖前面的列
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, 0, len(t.rows))
	for _, row := range t.rows {
		record := make(map[string]any, len(t.names))
		for i, name := range t.names {
			record[name] = row[i]
		}
		records = append(records, record)
	}
	return records
}

// Column 返回第一个名字匹配的列的全部值，找不到时第二个返回值为 false
func (t *Table) Column(name string) ([]any, bool) {
	for i, n := range t.names {
		if n != name {
			continue
		}
		values := make([]any, 0, len(t.rows))
		for _, row := range t.rows {
			values = append(values, row[i])
		}
		return values, true
	}
	return nil, false
}
