package model

// Table 内存中的二维表
// 列顺序有业务含义（汇总结果保持原有相对顺序），行与列严格对齐
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// NewTable 创建空表
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Columns: cols,
		Rows:    make([][]Cell, 0),
	}
}

// AppendRow 追加一行，行长度与列数对齐（不足补空，超出截断）
func (t *Table) AppendRow(cells []Cell) {
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// ColumnIndex 查找列下标，不存在返回 -1
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn 是否存在指定列
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// RowCount 行数
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount 列数
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Cell 取指定行列的单元格，越界返回空单元格
func (t *Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Cell{}
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return Cell{}
	}
	return t.Rows[row][col]
}

// Clone 深拷贝
func (t *Table) Clone() *Table {
	clone := NewTable(t.Columns)
	for _, row := range t.Rows {
		clone.AppendRow(row)
	}
	return clone
}

// Head 返回前 limit 行的拷贝，limit <= 0 返回全部
func (t *Table) Head(limit int) *Table {
	if limit <= 0 || limit >= len(t.Rows) {
		return t.Clone()
	}
	head := NewTable(t.Columns)
	for _, row := range t.Rows[:limit] {
		head.AppendRow(row)
	}
	return head
}

// SelectColumns 按给定列名投影出新表，忽略不存在的列
func (t *Table) SelectColumns(names []string) *Table {
	indexes := make([]int, 0, len(names))
	cols := make([]string, 0, len(names))
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			indexes = append(indexes, idx)
			cols = append(cols, name)
		}
	}

	result := NewTable(cols)
	for _, row := range t.Rows {
		cells := make([]Cell, len(indexes))
		for i, idx := range indexes {
			if idx < len(row) {
				cells[i] = row[idx]
			}
		}
		result.AppendRow(cells)
	}
	return result
}
