package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linsy89/sp-data-analysis-tool/internal/analyzer"
	"github.com/linsy89/sp-data-analysis-tool/internal/model"
	"github.com/linsy89/sp-data-analysis-tool/internal/service/session"
)

// DetailResponse 详情下钻结果
type DetailResponse struct {
	Dimension string       `json:"dimension"`
	Value     string       `json:"value"`
	Summary   *model.Table `json:"summary"`
	Rows      *model.Table `json:"rows"`
}

// GetDetail 详情下钻: 过滤出维度值对应的行，再对子集做单维度聚合
// GET /api/detail?dimension=Parent Code&value=SP-US
func (h *Handler) GetDetail(c *gin.Context) {
	dim := model.Dimension(c.Query("dimension"))
	value := c.Query("value")

	extracted, err := h.session.Extracted()
	if errors.Is(err, session.ErrNotLoaded) {
		c.JSON(http.StatusNotFound, gin.H{"error": "请先上传 Excel 文件"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filtered, err := analyzer.FilterByDimension(extracted, dim, value)
	if err != nil {
		c.JSON(aggregateErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if filtered.RowCount() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "未找到对应的数据"})
		return
	}

	summary, err := h.aggregator.AggregateSingle(filtered, dim)
	if err != nil {
		c.JSON(aggregateErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{
		Dimension: dim.Column(),
		Value:     value,
		Summary:   summary,
		Rows:      detailRows(filtered, dim),
	})
}

// detailRows 详情行列表，去掉未选中的两个维度列以简化展示
func detailRows(t *model.Table, dim model.Dimension) *model.Table {
	keep := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		drop := false
		for _, other := range model.Dimensions() {
			if other != dim && col == other.Column() {
				drop = true
				break
			}
		}
		if !drop {
			keep = append(keep, col)
		}
	}
	return t.SelectColumns(keep)
}
