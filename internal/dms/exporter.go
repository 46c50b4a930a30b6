package dms

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dockspace/backend/internal/monitoring"
)

// Docker Mailserver 消费的三个配置文件名。
const (
	AccountsFile = "postfix-accounts.cf"
	VirtualFile  = "postfix-virtual.cf"
	QuotasFile   = "dovecot-quotas.cf"
)

// exportOrder 固定了单次导出内的文件处理顺序。
var exportOrder = []string{AccountsFile, VirtualFile, QuotasFile}

// Exporter 从存储状态派生三个 DMS 配置文件。
// 文件内容是当前存储状态的纯函数（按自然键排序），重复导出幂等。
type Exporter struct {
	source     RecordSource
	defaultDir string
	log        *zap.Logger
	metrics    *monitoring.Metrics
}

// NewExporter 创建导出引擎。
// defaultDir 为空时回退到相对工作目录的 data/dms；metrics 可以为 nil。
func NewExporter(source RecordSource, defaultDir string, log *zap.Logger, metrics *monitoring.Metrics) *Exporter {
	if defaultDir == "" {
		defaultDir = filepath.Join("data", "dms")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		source:     source,
		defaultDir: defaultDir,
		log:        log,
		metrics:    metrics,
	}
}

// OutputDir 解析输出目录：调用参数优先于配置默认值。
func (e *Exporter) OutputDir(dir string) string {
	if dir != "" {
		return dir
	}
	return e.defaultDir
}

// ExportAll 从当前存储状态重新生成全部三个配置文件。
// 每次调用无条件覆盖三个文件；输出目录不可创建时返回错误（致命），
// 单条坏记录只记录警告并跳过。
func (e *Exporter) ExportAll(dir string) error {
	start := time.Now()

	dir = e.OutputDir(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.countFailure()
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	files, err := e.buildAll()
	if err != nil {
		e.countFailure()
		return err
	}

	for _, name := range exportOrder {
		if err := WriteLines(filepath.Join(dir, name), files[name]); err != nil {
			e.countFailure()
			return err
		}
		if e.metrics != nil {
			e.metrics.RecordsExported.WithLabelValues(name).Set(float64(len(files[name])))
		}
	}

	if e.metrics != nil {
		e.metrics.ExportsTotal.Inc()
		e.metrics.ExportDuration.Observe(time.Since(start).Seconds())
	}
	e.log.Info("wrote DMS config files",
		zap.String("dir", dir),
		zap.Int("accounts", len(files[AccountsFile])),
		zap.Int("aliases", len(files[VirtualFile])),
		zap.Int("quotas", len(files[QuotasFile])),
	)
	return nil
}

// buildAll 计算三个文件的期望行集合，并记录所有被跳过的记录。
func (e *Exporter) buildAll() (map[string][]string, error) {
	accounts, err := e.source.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	aliases, err := e.source.ListAliases()
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	quotas, err := e.source.ListQuotas()
	if err != nil {
		return nil, fmt.Errorf("failed to list quotas: %w", err)
	}

	accountLines, accountSkips := BuildAccountLines(accounts)
	virtualLines, virtualSkips := BuildVirtualLines(aliases, accounts)
	quotaLines, quotaSkips := BuildQuotaLines(quotas, accounts)

	e.logSkips(AccountsFile, accountSkips)
	e.logSkips(VirtualFile, virtualSkips)
	e.logSkips(QuotasFile, quotaSkips)

	return map[string][]string{
		AccountsFile: accountLines,
		VirtualFile:  virtualLines,
		QuotasFile:   quotaLines,
	}, nil
}

func (e *Exporter) logSkips(file string, skips []Skip) {
	for _, skip := range skips {
		e.log.Warn("skipping record during DMS export",
			zap.String("file", file),
			zap.String("record", skip.Record),
			zap.String("reason", skip.Reason),
		)
		if e.metrics != nil {
			e.metrics.RecordsSkipped.WithLabelValues(file).Inc()
		}
	}
}

func (e *Exporter) countFailure() {
	if e.metrics != nil {
		e.metrics.ExportFailuresTotal.Inc()
	}
}
