package analyzer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

var (
	// ErrInvalidDimension 维度不在 Parent Code / Pattern / Attribute 之内
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrDuplicateDimension 交叉分析的两个维度相同
	ErrDuplicateDimension = errors.New("duplicate dimension")
)

// Aggregator 聚合分析器
type Aggregator struct {
	formatter *Formatter
}

// NewAggregator 创建聚合分析器
func NewAggregator(formatter *Formatter) *Aggregator {
	if formatter == nil {
		formatter = NewFormatter("")
	}
	return &Aggregator{formatter: formatter}
}

// excludedColumns 不参与求和的列: 广告活动名称列和三个维度列
func excludedColumns() map[string]struct{} {
	excluded := map[string]struct{}{
		"Campaign Name": {},
		"广告活动":          {},
	}
	for _, col := range model.DimensionColumns() {
		excluded[col] = struct{}{}
	}
	return excluded
}

// sumColumns 选出参与求和的列下标（保持原有相对顺序）
// 全部单元格都无法按数值解析的列不参与求和，避免输出无意义的 0
func sumColumns(t *model.Table) []int {
	excluded := excludedColumns()

	indexes := make([]int, 0, len(t.Columns))
	for i, col := range t.Columns {
		if _, skip := excluded[col]; skip {
			continue
		}
		for _, row := range t.Rows {
			if i < len(row) && row[i].IsNumber() {
				indexes = append(indexes, i)
				break
			}
		}
	}
	return indexes
}

// group 累加器
type group struct {
	sums []float64
}

// groupBy 按 key 函数分组求和
func groupBy(t *model.Table, colIndexes []int, keyOf func(row []model.Cell) string) map[string]*group {
	groups := make(map[string]*group)
	for _, row := range t.Rows {
		key := keyOf(row)
		g, ok := groups[key]
		if !ok {
			g = &group{sums: make([]float64, len(colIndexes))}
			groups[key] = g
		}
		for i, idx := range colIndexes {
			if idx < len(row) {
				g.sums[i] += row[idx].Float()
			}
		}
	}
	return groups
}

// AggregateSingle 按单个维度聚合
// 输出列: 维度列、各求和列（保持原有相对顺序）、已解析的派生指标列
// 行按维度值升序排列
func (a *Aggregator) AggregateSingle(t *model.Table, dim model.Dimension) (*model.Table, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, string(dim))
	}

	dimIdx := t.ColumnIndex(dim.Column())
	if dimIdx < 0 {
		return nil, fmt.Errorf("表格缺少维度列 %q，请先执行维度提取", dim.Column())
	}

	colIndexes := sumColumns(t)
	groups := groupBy(t, colIndexes, func(row []model.Cell) string {
		if dimIdx < len(row) {
			return row[dimIdx].String()
		}
		return ""
	})

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// 在汇总结果的列名上解析指标角色
	sumNames := make([]string, len(colIndexes))
	for i, idx := range colIndexes {
		sumNames[i] = t.Columns[idx]
	}
	resolved := ResolveMetricColumns(sumNames)
	sumIdxByName := make(map[string]int, len(sumNames))
	for i, name := range sumNames {
		sumIdxByName[name] = i
	}

	metrics := make([]derivedMetric, 0, len(derivedMetrics))
	for _, m := range derivedMetrics {
		if _, ok := resolved[m.Num]; !ok {
			continue
		}
		if _, ok := resolved[m.Den]; !ok {
			continue
		}
		metrics = append(metrics, m)
	}

	columns := make([]string, 0, 1+len(sumNames)+len(metrics))
	columns = append(columns, dim.Column())
	columns = append(columns, sumNames...)
	for _, m := range metrics {
		columns = append(columns, m.Name)
	}

	result := model.NewTable(columns)
	for _, key := range keys {
		g := groups[key]

		cells := make([]model.Cell, 0, len(columns))
		cells = append(cells, model.TextCell(key))
		for _, sum := range g.sums {
			cells = append(cells, model.NumberCell(sum))
		}
		for _, m := range metrics {
			num := g.sums[sumIdxByName[resolved[m.Num]]]
			den := g.sums[sumIdxByName[resolved[m.Den]]]
			cells = append(cells, model.TextCell(a.ratio(num, den, m)))
		}
		result.AppendRow(cells)
	}

	return result, nil
}

// ratio 计算并格式化派生指标，分母为 0 时返回 "-"
func (a *Aggregator) ratio(num, den float64, m derivedMetric) string {
	if den == 0 {
		return missingValue
	}
	return a.formatter.FormatFloat(num/den*m.Scale, m.Kind)
}

// AggregateCross 按两个维度交叉聚合，只做求和，不计算派生指标
// 行按 (dim1, dim2) 升序排列
func (a *Aggregator) AggregateCross(t *model.Table, dim1, dim2 model.Dimension) (*model.Table, error) {
	if !dim1.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, string(dim1))
	}
	if !dim2.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, string(dim2))
	}
	if dim1 == dim2 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateDimension, string(dim1))
	}

	idx1 := t.ColumnIndex(dim1.Column())
	idx2 := t.ColumnIndex(dim2.Column())
	if idx1 < 0 || idx2 < 0 {
		return nil, fmt.Errorf("表格缺少维度列 %q 或 %q，请先执行维度提取", dim1.Column(), dim2.Column())
	}

	colIndexes := sumColumns(t)

	type pair struct {
		first, second string
	}
	cellAt := func(row []model.Cell, idx int) string {
		if idx < len(row) {
			return row[idx].String()
		}
		return ""
	}

	pairs := make(map[pair]*group)
	for _, row := range t.Rows {
		key := pair{first: cellAt(row, idx1), second: cellAt(row, idx2)}
		g, ok := pairs[key]
		if !ok {
			g = &group{sums: make([]float64, len(colIndexes))}
			pairs[key] = g
		}
		for i, idx := range colIndexes {
			if idx < len(row) {
				g.sums[i] += row[idx].Float()
			}
		}
	}

	keys := make([]pair, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].first != keys[j].first {
			return keys[i].first < keys[j].first
		}
		return keys[i].second < keys[j].second
	})

	columns := make([]string, 0, 2+len(colIndexes))
	columns = append(columns, dim1.Column(), dim2.Column())
	for _, idx := range colIndexes {
		columns = append(columns, t.Columns[idx])
	}

	result := model.NewTable(columns)
	for _, key := range keys {
		g := pairs[key]
		cells := make([]model.Cell, 0, len(columns))
		cells = append(cells, model.TextCell(key.first), model.TextCell(key.second))
		for _, sum := range g.sums {
			cells = append(cells, model.NumberCell(sum))
		}
		result.AppendRow(cells)
	}

	return result, nil
}

// FilterByDimension 过滤出维度列等于指定值的行，用于详情页下钻
func FilterByDimension(t *model.Table, dim model.Dimension, value string) (*model.Table, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, string(dim))
	}

	idx := t.ColumnIndex(dim.Column())
	if idx < 0 {
		return nil, fmt.Errorf("表格缺少维度列 %q，请先执行维度提取", dim.Column())
	}

	result := model.NewTable(t.Columns)
	for _, row := range t.Rows {
		if idx < len(row) && row[idx].String() == value {
			result.AppendRow(row)
		}
	}
	return result, nil
}
