package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linsy89/sp-data-analysis-tool/internal/analyzer"
	"github.com/linsy89/sp-data-analysis-tool/internal/model"
	"github.com/linsy89/sp-data-analysis-tool/internal/service/session"
)

// AggregateSingle 单维度聚合分析
// GET /api/aggregate?dimension=Parent Code
func (h *Handler) AggregateSingle(c *gin.Context) {
	dim := model.Dimension(c.Query("dimension"))

	extracted, err := h.session.Extracted()
	if errors.Is(err, session.ErrNotLoaded) {
		c.JSON(http.StatusNotFound, gin.H{"error": "请先上传 Excel 文件"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.aggregator.AggregateSingle(extracted, dim)
	if err != nil {
		c.JSON(aggregateErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AggregateCross 交叉维度聚合分析
// GET /api/aggregate/cross?dim1=Parent Code&dim2=Pattern
func (h *Handler) AggregateCross(c *gin.Context) {
	dim1 := model.Dimension(c.Query("dim1"))
	dim2 := model.Dimension(c.Query("dim2"))

	extracted, err := h.session.Extracted()
	if errors.Is(err, session.ErrNotLoaded) {
		c.JSON(http.StatusNotFound, gin.H{"error": "请先上传 Excel 文件"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.aggregator.AggregateCross(extracted, dim1, dim2)
	if err != nil {
		c.JSON(aggregateErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// aggregateErrorStatus 维度参数错误归为 400，其余归为 500
func aggregateErrorStatus(err error) int {
	if errors.Is(err, analyzer.ErrInvalidDimension) || errors.Is(err, analyzer.ErrDuplicateDimension) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
