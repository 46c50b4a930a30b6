package httptransport

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dockspace/backend/internal/dms"
)

// DMSHandler 配置文件导出与校验处理器
type DMSHandler struct {
	exporter *dms.Exporter
	logger   *zap.Logger
}

// NewDMSHandler 创建 DMS 处理器
func NewDMSHandler(exporter *dms.Exporter, logger *zap.Logger) *DMSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DMSHandler{exporter: exporter, logger: logger}
}

// ExportRequest 手动导出请求
type ExportRequest struct {
	OutputDir string `json:"output_dir"` // 留空使用配置的输出目录
}

// Export 从当前存储状态重新生成全部配置文件
func (h *DMSHandler) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, MsgInvalidRequest)
			return
		}
	}

	if err := h.exporter.ExportAll(req.OutputDir); err != nil {
		h.logger.Error("manual export failed", zap.Error(err))
		InternalError(c, MsgExportFailed)
		return
	}

	SuccessWithMsg(c, "配置文件已重新生成", gin.H{
		"output_dir": h.exporter.OutputDir(req.OutputDir),
	})
}

// VerifyRequest 漂移校验请求
type VerifyRequest struct {
	OutputDir string `json:"output_dir"` // 留空使用配置的输出目录
	DryRun    bool   `json:"dry_run"`    // true 只报告，不修复
}

// VerifyResponse 漂移校验结果
type VerifyResponse struct {
	Clean     bool     `json:"clean"`
	Drifted   []string `json:"drifted,omitempty"`
	Rewritten bool     `json:"rewritten"`
}

// Verify 对比磁盘文件与期望内容，默认修复漂移
func (h *DMSHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, MsgInvalidRequest)
			return
		}
	}

	result, err := h.exporter.Verify(req.OutputDir, !req.DryRun)
	if err != nil {
		h.logger.Error("drift verification failed", zap.Error(err))
		InternalError(c, MsgVerifyFailed)
		return
	}

	Success(c, VerifyResponse{
		Clean:     result.AllClean(),
		Drifted:   result.Drifted,
		Rewritten: result.Rewritten,
	})
}
