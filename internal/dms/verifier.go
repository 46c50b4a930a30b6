package dms

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// VerifyResult 描述一次漂移校验的结果。
type VerifyResult struct {
	Drifted   []string // 与期望内容不一致的文件名
	Rewritten bool     // 是否已将漂移文件重写为期望内容
}

// AllClean 在没有任何文件漂移时为 true。
func (r *VerifyResult) AllClean() bool {
	return len(r.Drifted) == 0
}

// Verify 对比磁盘上的三个配置文件与按当前存储状态计算出的期望内容。
//
// 文件缺失按空内容处理；逐字节比较。rewrite 为 true 时漂移文件会被
// 重写为期望内容（修复模式），否则只报告（演练模式）。任意时刻调用
// 都是安全的，修复模式总是收敛到正确状态。
func (e *Exporter) Verify(dir string, rewrite bool) (*VerifyResult, error) {
	dir = e.OutputDir(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	files, err := e.buildAll()
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{}
	for _, name := range exportOrder {
		path := filepath.Join(dir, name)
		expected := NormalizeContent(files[name])

		current, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if string(current) == expected {
			continue
		}

		result.Drifted = append(result.Drifted, name)
		if e.metrics != nil {
			e.metrics.DriftDetectedTotal.WithLabelValues(name).Inc()
		}
		if rewrite {
			if err := os.WriteFile(path, []byte(expected), 0644); err != nil {
				return nil, fmt.Errorf("failed to rewrite %s: %w", path, err)
			}
			if e.metrics != nil {
				e.metrics.DriftRewritesTotal.Inc()
			}
		}
	}

	if len(result.Drifted) > 0 {
		result.Rewritten = rewrite
		action := "detected drift in"
		if rewrite {
			action = "rewrote"
		}
		e.log.Warn(action+" DMS config files",
			zap.Strings("files", result.Drifted),
			zap.String("dir", dir),
		)
	}
	return result, nil
}
