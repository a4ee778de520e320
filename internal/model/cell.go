package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CellKind 单元格值类型
type CellKind int

const (
	CellEmpty CellKind = iota // 空单元格
	CellNumber
	CellText
)

// Cell 单元格值
// 数值解析在构造时一次性完成，之后不再做隐式类型转换
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
}

// NewCell 从原始字符串构造单元格
// 数值解析规则: 去除首尾空白和千分位分隔符后按浮点数解析，失败则保留为文本
func NewCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Kind: CellEmpty}
	}

	numeric := strings.ReplaceAll(trimmed, ",", "")
	if f, err := strconv.ParseFloat(numeric, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Cell{Kind: CellNumber, Num: f}
	}

	return Cell{Kind: CellText, Text: trimmed}
}

// NumberCell 构造数值单元格
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Num: v}
}

// TextCell 构造文本单元格
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// IsNumber 是否为数值
func (c Cell) IsNumber() bool {
	return c.Kind == CellNumber
}

// IsEmpty 是否为空
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Float 返回数值，非数值返回 0
// 求和时缺失/无法解析的值按 0 处理
func (c Cell) Float() float64 {
	if c.Kind == CellNumber {
		return c.Num
	}
	return 0
}

// String 显示字符串
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellText:
		return c.Text
	}
	return ""
}

// MarshalJSON 空值 -> null，数值 -> number，文本 -> string
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNumber:
		return json.Marshal(c.Num)
	case CellText:
		return json.Marshal(c.Text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON 反向还原
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		*c = Cell{Kind: CellEmpty}
	case float64:
		*c = Cell{Kind: CellNumber, Num: val}
	case string:
		*c = Cell{Kind: CellText, Text: val}
	case bool:
		// Excel 布尔单元格按文本处理
		*c = Cell{Kind: CellText, Text: strconv.FormatBool(val)}
	default:
		*c = Cell{Kind: CellEmpty}
	}
	return nil
}
