package analyzer

import (
	"fmt"
	"math"

	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

// FormatKind 指标展示格式
type FormatKind string

const (
	FormatPercent  FormatKind = "percent"  // 12.34%
	FormatCurrency FormatKind = "currency" // ¥12.34
	FormatRatio    FormatKind = "ratio"    // 1.23x
	FormatNumber   FormatKind = "number"   // 整数
	FormatPlain    FormatKind = "plain"    // 原样
)

// DefaultCurrencySymbol 默认货币符号
const DefaultCurrencySymbol = "¥"

// missingValue 无效值的展示占位符
const missingValue = "-"

// Formatter 指标值格式化器
type Formatter struct {
	currencySymbol string
}

// NewFormatter 创建格式化器，symbol 为空时使用默认货币符号
func NewFormatter(symbol string) *Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return &Formatter{currencySymbol: symbol}
}

// Format 格式化指标值
// 空值、非数值、NaN、Inf 一律返回 "-"
func (f *Formatter) Format(c model.Cell, kind FormatKind) string {
	if !c.IsNumber() {
		return missingValue
	}
	return f.FormatFloat(c.Num, kind)
}

// FormatFloat 格式化浮点指标值
func (f *Formatter) FormatFloat(v float64, kind FormatKind) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missingValue
	}

	switch kind {
	case FormatPercent:
		return fmt.Sprintf("%.2f%%", v)
	case FormatCurrency:
		return fmt.Sprintf("%s%.2f", f.currencySymbol, v)
	case FormatRatio:
		return fmt.Sprintf("%.2fx", v)
	case FormatNumber:
		return fmt.Sprintf("%d", int64(v))
	default:
		return model.NumberCell(v).String()
	}
}
