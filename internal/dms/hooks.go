package dms

import (
	"go.uber.org/zap"

	"dockspace/backend/internal/monitoring"
)

// AliasRemover 是钩子清理遮蔽别名所需的最小存储能力。
type AliasRemover interface {
	DeleteAliasesByAddress(address string) (int, error)
}

// Hooks 在账户、别名、配额的每次成功提交之后被调用，
// 保持导出文件与存储状态最终一致。
//
// 失败隔离契约：导出失败只记录日志，绝不向触发变更的调用方传播——
// 配置导出失败是服务降级事件，不是请求失败。
type Hooks struct {
	exporter *Exporter
	aliases  AliasRemover
	log      *zap.Logger
	metrics  *monitoring.Metrics
}

// NewHooks 创建变更钩子。metrics 可以为 nil。
func NewHooks(exporter *Exporter, aliases AliasRemover, log *zap.Logger, metrics *monitoring.Metrics) *Hooks {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hooks{
		exporter: exporter,
		aliases:  aliases,
		log:      log,
		metrics:  metrics,
	}
}

// OnAccountSaved 在账户创建或更新后调用。
// 先删除与账户地址冲突的遮蔽别名（写入校验和保存之间的竞争
// 可能让两者短暂共存），再触发全量导出。
func (h *Hooks) OnAccountSaved(address string) {
	h.removeShadowAliases(address)
	h.sync()
}

// OnAccountDeleted 在账户删除后调用。
func (h *Hooks) OnAccountDeleted() {
	h.sync()
}

// OnAliasChanged 在别名创建、更新或删除后调用。
func (h *Hooks) OnAliasChanged() {
	h.sync()
}

// OnQuotaChanged 在配额创建、更新或删除后调用。
func (h *Hooks) OnQuotaChanged() {
	h.sync()
}

// removeShadowAliases 删除与给定邮箱地址冲突的所有别名。
func (h *Hooks) removeShadowAliases(address string) {
	deleted, err := h.aliases.DeleteAliasesByAddress(address)
	if err != nil {
		h.log.Error("failed to remove shadowing aliases",
			zap.String("mailbox", address),
			zap.Error(err),
		)
		return
	}
	if deleted > 0 {
		h.log.Info("removed aliases shadowing mailbox",
			zap.Int("count", deleted),
			zap.String("mailbox", address),
		)
		if h.metrics != nil {
			h.metrics.ShadowAliasesRemovedTotal.Add(float64(deleted))
		}
	}
}

// sync 触发一次全量导出并吞掉所有错误。
// 导出是幂等的，并发或重复触发只是多余的工作，不会造成损坏。
func (h *Hooks) sync() {
	if err := h.exporter.ExportAll(""); err != nil {
		h.log.Error("failed to write DMS config files after record change", zap.Error(err))
	}
}
