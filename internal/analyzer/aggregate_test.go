package analyzer

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/linsy89/sp-data-analysis-tool/internal/extractor"
	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

// buildExtracted 构造一张已提取维度的测试表
func buildExtracted(t *testing.T, columns []string, rows [][]any) *model.Table {
	t.Helper()

	raw := model.NewTable(columns)
	for _, row := range rows {
		cells := make([]model.Cell, len(row))
		for i, v := range row {
			switch val := v.(type) {
			case string:
				cells[i] = model.TextCell(val)
			case float64:
				cells[i] = model.NumberCell(val)
			case int:
				cells[i] = model.NumberCell(float64(val))
			case nil:
				cells[i] = model.Cell{}
			default:
				t.Fatalf("unsupported cell value %v", v)
			}
		}
		raw.AppendRow(cells)
	}

	extracted, err := extractor.ExtractAll(raw)
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	return extracted
}

func TestAggregateSingle_CTRFromGroupSums(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Impressions", "Clicks"},
		[][]any{
			{"SP-US 模式A1", 100, 5},
			{"SP-US 模式A2", 300, 15},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}

	if result.RowCount() != 1 {
		t.Fatalf("row count = %d", result.RowCount())
	}
	if got := result.Cell(0, result.ColumnIndex("Impressions")).Num; got != 400 {
		t.Fatalf("Impressions = %v, want 400", got)
	}
	if got := result.Cell(0, result.ColumnIndex("Clicks")).Num; got != 20 {
		t.Fatalf("Clicks = %v, want 20", got)
	}
	if got := result.Cell(0, result.ColumnIndex("CTR")).Text; got != "5.00%" {
		t.Fatalf("CTR = %q, want 5.00%%", got)
	}
}

func TestAggregateSingle_DivisionByZeroRendersDash(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Spend", "Sales"},
		[][]any{
			{"SP-US 模式A1", 50, 0},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}

	if got := result.Cell(0, result.ColumnIndex("ROAS")).Text; got != "-" {
		t.Fatalf("ROAS = %q, want -", got)
	}
	if got := result.Cell(0, result.ColumnIndex("ACoS")).Text; got != "-" {
		t.Fatalf("ACoS = %q, want -", got)
	}
}

func TestAggregateSingle_ColumnOrder(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Impressions", "Clicks", "Spend", "Sales", "Conversions"},
		[][]any{
			{"SP-US 模式A1", 1000, 50, 20.0, 80.0, 4},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}

	want := []string{
		"Parent Code", "Impressions", "Clicks", "Spend", "Sales", "Conversions",
		"CTR", "CPC", "ROAS", "ACoS", "CVR", "CPA",
	}
	if !reflect.DeepEqual(result.Columns, want) {
		t.Fatalf("columns = %v", result.Columns)
	}
}

func TestAggregateSingle_UnresolvedRolesSuppressMetrics(t *testing.T) {
	t.Parallel()

	// 只有曝光和点击，只应产出 CTR
	extracted := buildExtracted(t,
		[]string{"Campaign Name", "曝光量", "点击"},
		[][]any{
			{"SP-US 模式A1", 200, 10},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}

	if !result.HasColumn("CTR") {
		t.Fatalf("CTR column missing: %v", result.Columns)
	}
	for _, name := range []string{"CPC", "ROAS", "ACoS", "CVR", "CPA"} {
		if result.HasColumn(name) {
			t.Fatalf("unexpected column %s: %v", name, result.Columns)
		}
	}
	if got := result.Cell(0, result.ColumnIndex("CTR")).Text; got != "5.00%" {
		t.Fatalf("CTR = %q", got)
	}
}

func TestAggregateSingle_SumInvariant(t *testing.T) {
	t.Parallel()

	rows := [][]any{
		{"SP-US 模式A1", 100, 5},
		{"SP-US 模式A2 品类B", 200, 10},
		{"SP-JP 模式B1", 300, 30},
		{"SP-JP", 150, 9},
		{"单词", 50, 6},
	}
	extracted := buildExtracted(t, []string{"Campaign Name", "Impressions", "Clicks"}, rows)

	var wantImpressions float64
	for _, row := range rows {
		wantImpressions += float64(row[1].(int))
	}

	agg := NewAggregator(nil)
	for _, dim := range model.Dimensions() {
		result, err := agg.AggregateSingle(extracted, dim)
		if err != nil {
			t.Fatalf("AggregateSingle(%s): %v", dim, err)
		}

		var total float64
		idx := result.ColumnIndex("Impressions")
		for row := 0; row < result.RowCount(); row++ {
			total += result.Cell(row, idx).Float()
		}
		if total != wantImpressions {
			t.Fatalf("dimension %s: sum = %v, want %v", dim, total, wantImpressions)
		}
	}
}

func TestAggregateSingle_SortedByGroupKey(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Clicks"},
		[][]any{
			{"SP-US 模式A1", 1},
			{"SP-DE 模式A1", 2},
			{"SP-JP 模式A1", 3},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}

	keys := make([]string, result.RowCount())
	for i := range keys {
		keys[i] = result.Cell(i, 0).Text
	}
	if !sort.StringsAreSorted(keys) {
		t.Fatalf("keys not sorted: %v", keys)
	}
}

func TestAggregateSingle_TextColumnsExcluded(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Clicks", "备注"},
		[][]any{
			{"SP-US 模式A1", 5, "首投"},
			{"SP-US 模式A2", 15, "复投"},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}

	if result.HasColumn("备注") {
		t.Fatalf("text column should be excluded: %v", result.Columns)
	}
	if got := result.Cell(0, result.ColumnIndex("Clicks")).Num; got != 20 {
		t.Fatalf("Clicks = %v, want 20", got)
	}
}

func TestAggregateSingle_UnparseableCellsCountAsZero(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Clicks"},
		[][]any{
			{"SP-US 模式A1", 5},
			{"SP-US 模式A2", "n/a"},
			{"SP-US 模式A3", nil},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}

	if got := result.Cell(0, result.ColumnIndex("Clicks")).Num; got != 5 {
		t.Fatalf("Clicks = %v, want 5", got)
	}
}

func TestAggregateSingle_InvalidDimension(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Clicks"},
		[][]any{{"SP-US 模式A1", 5}},
	)

	agg := NewAggregator(nil)
	if _, err := agg.AggregateSingle(extracted, model.Dimension("Region")); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("err = %v, want ErrInvalidDimension", err)
	}
}

func TestAggregateSingle_EmptyTable(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t, []string{"Campaign Name", "Clicks"}, nil)

	agg := NewAggregator(nil)
	result, err := agg.AggregateSingle(extracted, model.DimensionParentCode)
	if err != nil {
		t.Fatalf("AggregateSingle: %v", err)
	}
	if result.RowCount() != 0 {
		t.Fatalf("row count = %d, want 0", result.RowCount())
	}
}

func TestAggregateCross_SumsWithoutDerivedMetrics(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Impressions", "Clicks"},
		[][]any{
			{"SP-US 模式A1", 100, 5},
			{"SP-US 模式A1", 50, 3},
			{"SP-US 模式A2", 200, 10},
			{"SP-JP 模式A1", 300, 30},
		},
	)

	agg := NewAggregator(nil)
	result, err := agg.AggregateCross(extracted, model.DimensionParentCode, model.DimensionPattern)
	if err != nil {
		t.Fatalf("AggregateCross: %v", err)
	}

	want := []string{"Parent Code", "Pattern", "Impressions", "Clicks"}
	if !reflect.DeepEqual(result.Columns, want) {
		t.Fatalf("columns = %v", result.Columns)
	}
	if result.RowCount() != 3 {
		t.Fatalf("row count = %d, want 3", result.RowCount())
	}

	// 排序: (SP-JP,模式A1), (SP-US,模式A1), (SP-US,模式A2)
	if result.Cell(0, 0).Text != "SP-JP" {
		t.Fatalf("row 0 key = %q", result.Cell(0, 0).Text)
	}
	if result.Cell(1, 0).Text != "SP-US" || result.Cell(1, 1).Text != "模式A1" {
		t.Fatalf("row 1 key = (%q, %q)", result.Cell(1, 0).Text, result.Cell(1, 1).Text)
	}
	if got := result.Cell(1, 2).Num; got != 150 {
		t.Fatalf("SP-US/模式A1 Impressions = %v, want 150", got)
	}
}

func TestAggregateCross_DimensionErrors(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Clicks"},
		[][]any{{"SP-US 模式A1", 5}},
	)

	agg := NewAggregator(nil)

	if _, err := agg.AggregateCross(extracted, model.DimensionPattern, model.DimensionPattern); !errors.Is(err, ErrDuplicateDimension) {
		t.Fatalf("err = %v, want ErrDuplicateDimension", err)
	}
	if _, err := agg.AggregateCross(extracted, model.Dimension("Region"), model.DimensionPattern); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("err = %v, want ErrInvalidDimension", err)
	}
}

func TestFilterByDimension(t *testing.T) {
	t.Parallel()

	extracted := buildExtracted(t,
		[]string{"Campaign Name", "Clicks"},
		[][]any{
			{"SP-US 模式A1", 5},
			{"SP-JP 模式A1", 3},
			{"SP-US 模式A2", 7},
		},
	)

	filtered, err := FilterByDimension(extracted, model.DimensionParentCode, "SP-US")
	if err != nil {
		t.Fatalf("FilterByDimension: %v", err)
	}
	if filtered.RowCount() != 2 {
		t.Fatalf("row count = %d, want 2", filtered.RowCount())
	}

	none, err := FilterByDimension(extracted, model.DimensionParentCode, "SP-DE")
	if err != nil {
		t.Fatalf("FilterByDimension: %v", err)
	}
	if none.RowCount() != 0 {
		t.Fatalf("row count = %d, want 0", none.RowCount())
	}
}

func TestResolveMetricColumns_FirstMatchWins(t *testing.T) {
	t.Parallel()

	resolved := ResolveMetricColumns([]string{"点击数", "Clicks", "Spend ($)", "备注"})

	if got := resolved[RoleClicks]; got != "Clicks" {
		t.Fatalf("clicks column = %q, want Clicks", got)
	}
	if got := resolved[RoleSpend]; got != "Spend ($)" {
		t.Fatalf("spend column = %q", got)
	}
	if _, ok := resolved[RoleSales]; ok {
		t.Fatalf("sales should be unresolved")
	}
}
