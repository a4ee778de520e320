package model

// Dimension 分析维度
// 三个维度列由广告活动名称按空格切分得到
type Dimension string

const (
	DimensionParentCode Dimension = "Parent Code"
	DimensionPattern    Dimension = "Pattern"
	DimensionAttribute  Dimension = "Attribute"
)

// Unclassified 位置词缺失时的占位值
const Unclassified = "Unclassified"

// Dimensions 全部维度，顺序固定
func Dimensions() []Dimension {
	return []Dimension{DimensionParentCode, DimensionPattern, DimensionAttribute}
}

// DimensionColumns 维度列名
func DimensionColumns() []string {
	return []string{
		string(DimensionParentCode),
		string(DimensionPattern),
		string(DimensionAttribute),
	}
}

// Valid 是否为合法维度
func (d Dimension) Valid() bool {
	switch d {
	case DimensionParentCode, DimensionPattern, DimensionAttribute:
		return true
	}
	return false
}

// Column 维度对应的列名
func (d Dimension) Column() string {
	return string(d)
}
