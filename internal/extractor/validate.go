package extractor

import (
	"fmt"

	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

// ValidationResult 数据校验结果
type ValidationResult struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

// Validate 校验上传表格是否符合分析要求
// 收集所有违反项而不是遇错即返
func Validate(t *model.Table) ValidationResult {
	errs := make([]string, 0)

	if _, err := CampaignColumn(t); err != nil {
		errs = append(errs, fmt.Sprintf("缺少 %q 或 %q 列", campaignColumns[0], campaignColumns[1]))
	}

	if t.RowCount() == 0 {
		errs = append(errs, "表格数据为空")
	}

	return ValidationResult{
		OK:     len(errs) == 0,
		Errors: errs,
	}
}
