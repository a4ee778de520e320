package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linsy89/sp-data-analysis-tool/internal/extractor"
	"github.com/linsy89/sp-data-analysis-tool/internal/service/excel"
)

// UploadResponse 上传结果
type UploadResponse struct {
	FileID      string                     `json:"fileId"`
	FileName    string                     `json:"fileName"`
	RowCount    int                        `json:"rowCount"`
	ColumnCount int                        `json:"columnCount"`
	Columns     []string                   `json:"columns"`
	Summary     extractor.DimensionSummary `json:"summary"`
}

// Upload 上传 Excel 文件并提取维度
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 .xlsx 文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer file.Close()

	reader := excel.NewReader()
	if err := reader.Load(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件解析失败，请确认是有效的 Excel 文件"})
		return
	}
	defer reader.Close()

	raw, err := reader.Table(h.maxRows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result := extractor.Validate(raw); !result.OK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "数据校验失败", "details": result.Errors})
		return
	}

	extracted, err := extractor.ExtractAll(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 新上传使旧会话和旧快照失效
	if err := h.session.SetUpload(reader.FileID(), fileHeader.Filename, raw, extracted); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存提取结果失败"})
		return
	}

	summary, err := h.session.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		FileID:      reader.FileID(),
		FileName:    fileHeader.Filename,
		RowCount:    raw.RowCount(),
		ColumnCount: raw.ColumnCount(),
		Columns:     raw.Columns,
		Summary:     summary,
	})
}

// Clear 清除当前会话数据
// POST /api/clear
func (h *Handler) Clear(c *gin.Context) {
	if err := h.session.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清除缓存失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
