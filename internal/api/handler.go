package api

import (
	"github.com/gin-gonic/gin"

	"github.com/linsy89/sp-data-analysis-tool/internal/analyzer"
	"github.com/linsy89/sp-data-analysis-tool/internal/service/session"
)

// Handler API 处理器
type Handler struct {
	session    *session.Session
	aggregator *analyzer.Aggregator
	maxRows    int
}

// NewHandler 创建 API 处理器
func NewHandler(sess *session.Session, aggregator *analyzer.Aggregator, maxRows int) *Handler {
	return &Handler{
		session:    sess,
		aggregator: aggregator,
		maxRows:    maxRows,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据上传与清除
	router.POST("/upload", h.Upload)
	router.POST("/clear", h.Clear)

	// 维度摘要与数据预览
	router.GET("/summary", h.GetSummary)
	router.GET("/table", h.GetTable)

	// 聚合分析
	router.GET("/aggregate", h.AggregateSingle)
	router.GET("/aggregate/cross", h.AggregateCross)

	// 详情下钻
	router.GET("/detail", h.GetDetail)
}
