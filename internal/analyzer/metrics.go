package analyzer

// MetricRole 指标语义角色
// 同一角色在不同报表里的列名不同（中英文、带单位后缀等），按同义词表解析
type MetricRole string

const (
	RoleImpressions MetricRole = "impressions"
	RoleClicks      MetricRole = "clicks"
	RoleSpend       MetricRole = "spend"
	RoleSales       MetricRole = "sales"
	RoleConversions MetricRole = "conversions"
)

// metricSynonyms 角色 -> 候选列名（按优先级）
// 新增同义词只需要在这里补一项
var metricSynonyms = []struct {
	Role  MetricRole
	Names []string
}{
	{RoleImpressions, []string{"Impressions", "曝光量", "展示"}},
	{RoleClicks, []string{"Clicks", "Click", "点击", "点击数"}},
	{RoleSpend, []string{"Spend", "Spend ($)", "花费", "支出"}},
	{RoleSales, []string{"Sales", "销售额", "销售"}},
	{RoleConversions, []string{"Conversions", "转化", "转化数"}},
}

// ResolveMetricColumns 在实际表头中解析各角色对应的列名
// 每个角色取第一个命中的候选列名；未命中的角色不出现在结果里
func ResolveMetricColumns(columns []string) map[MetricRole]string {
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col] = struct{}{}
	}

	resolved := make(map[MetricRole]string)
	for _, entry := range metricSynonyms {
		for _, name := range entry.Names {
			if _, ok := present[name]; ok {
				resolved[entry.Role] = name
				break
			}
		}
	}
	return resolved
}

// derivedMetric 派生指标定义
// 全部在分组求和之后计算（先汇总后求比，不做行级比值再平均）
type derivedMetric struct {
	Name  string
	Num   MetricRole // 分子
	Den   MetricRole // 分母
	Scale float64    // 百分比指标乘 100
	Kind  FormatKind
}

// derivedMetrics 派生指标，输出顺序固定
var derivedMetrics = []derivedMetric{
	{Name: "CTR", Num: RoleClicks, Den: RoleImpressions, Scale: 100, Kind: FormatPercent},
	{Name: "CPC", Num: RoleSpend, Den: RoleClicks, Scale: 1, Kind: FormatCurrency},
	{Name: "ROAS", Num: RoleSales, Den: RoleSpend, Scale: 1, Kind: FormatRatio},
	{Name: "ACoS", Num: RoleSpend, Den: RoleSales, Scale: 100, Kind: FormatPercent},
	{Name: "CVR", Num: RoleConversions, Den: RoleClicks, Scale: 100, Kind: FormatPercent},
	{Name: "CPA", Num: RoleSpend, Den: RoleConversions, Scale: 1, Kind: FormatCurrency},
}
