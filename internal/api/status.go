package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linsy89/sp-data-analysis-tool/internal/model"
	"github.com/linsy89/sp-data-analysis-tool/internal/service/session"
)

// GetStatus 查询当前会话状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	extracted, err := h.session.Extracted()
	if errors.Is(err, session.ErrNotLoaded) {
		c.JSON(http.StatusOK, gin.H{"loaded": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loaded":      true,
		"fileName":    h.session.FileName(),
		"rowCount":    extracted.RowCount(),
		"columnCount": extracted.ColumnCount(),
	})
}

// GetSummary 查询维度统计摘要
// GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.session.Summary()
	if errors.Is(err, session.ErrNotLoaded) {
		c.JSON(http.StatusNotFound, gin.H{"error": "请先上传 Excel 文件"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTable 预览表格数据
// GET /api/table?kind=raw|extracted&limit=N
func (h *Handler) GetTable(c *gin.Context) {
	kind := c.DefaultQuery("kind", "extracted")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var (
		table *model.Table
		err   error
	)
	switch kind {
	case "raw":
		table, err = h.session.Raw()
	case "extracted":
		table, err = h.session.Extracted()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind 只支持 raw 或 extracted"})
		return
	}

	if errors.Is(err, session.ErrNotLoaded) {
		c.JSON(http.StatusNotFound, gin.H{"error": "请先上传 Excel 文件"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, table.Head(limit))
}
