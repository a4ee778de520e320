package extractor

import (
	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

// DimensionSummary 各维度去重后的取值个数，用于页面顶部的概览卡片
type DimensionSummary struct {
	ParentCodeCount int `json:"parentCodeCount"`
	PatternCount    int `json:"patternCount"`
	AttributeCount  int `json:"attributeCount"`
}

// Summarize 统计已提取表格中各维度的唯一值个数
func Summarize(t *model.Table) DimensionSummary {
	return DimensionSummary{
		ParentCodeCount: countDistinct(t, model.DimensionParentCode),
		PatternCount:    countDistinct(t, model.DimensionPattern),
		AttributeCount:  countDistinct(t, model.DimensionAttribute),
	}
}

func countDistinct(t *model.Table, dim model.Dimension) int {
	idx := t.ColumnIndex(dim.Column())
	if idx < 0 {
		return 0
	}

	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		if idx < len(row) {
			seen[row[idx].String()] = struct{}{}
		}
	}
	return len(seen)
}
