package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

// ErrMissingColumn 缺少广告活动名称列
var ErrMissingColumn = errors.New("missing campaign name column")

// campaignColumns 广告活动名称列的候选列名，按优先级匹配（支持中英文）
var campaignColumns = []string{"Campaign Name", "广告活动"}

// CampaignColumn 定位广告活动名称列
func CampaignColumn(t *model.Table) (string, error) {
	for _, name := range campaignColumns {
		if t.HasColumn(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: 未找到 %q 或 %q 列", ErrMissingColumn, campaignColumns[0], campaignColumns[1])
}

// extractToken 取广告活动名称的第 pos 个空格分隔词（从 0 开始）
// 名称缺失、非文本或对应位置没有词时返回 Unclassified
func extractToken(name model.Cell, pos int) string {
	if name.Kind != model.CellText {
		return model.Unclassified
	}

	parts := strings.Fields(name.Text)
	if pos < len(parts) && strings.TrimSpace(parts[pos]) != "" {
		return parts[pos]
	}
	return model.Unclassified
}

// ExtractParentCode 提取 Parent Code（第一个空格前的内容）
// 例: "SP-US 模式A1" -> "SP-US"
func ExtractParentCode(name model.Cell) string {
	return extractToken(name, 0)
}

// ExtractPattern 提取 Pattern（第一个和第二个空格之间的内容）
// 例: "SP-US 模式A1" -> "模式A1"
func ExtractPattern(name model.Cell) string {
	return extractToken(name, 1)
}

// ExtractAttribute 提取 Attribute（第二个空格之后的第一个词）
// 例: "SP-US 模式A1 品类B" -> "品类B"
// 例: "SP-US 模式A1" -> "Unclassified"
func ExtractAttribute(name model.Cell) string {
	return extractToken(name, 2)
}

// ExtractAll 为表格追加三个维度列: Parent Code, Pattern, Attribute
// 返回新表，不修改调用方的表
func ExtractAll(t *model.Table) (*model.Table, error) {
	campaignCol, err := CampaignColumn(t)
	if err != nil {
		return nil, err
	}
	campaignIdx := t.ColumnIndex(campaignCol)

	columns := make([]string, 0, len(t.Columns)+3)
	columns = append(columns, t.Columns...)
	columns = append(columns, model.DimensionColumns()...)

	result := model.NewTable(columns)
	for _, row := range t.Rows {
		var name model.Cell
		if campaignIdx < len(row) {
			name = row[campaignIdx]
		}

		cells := make([]model.Cell, 0, len(columns))
		cells = append(cells, row...)
		cells = append(cells,
			model.TextCell(ExtractParentCode(name)),
			model.TextCell(ExtractPattern(name)),
			model.TextCell(ExtractAttribute(name)),
		)
		result.AppendRow(cells)
	}

	return result, nil
}
