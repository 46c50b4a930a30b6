package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"dockspace/backend/internal/config"
	"dockspace/backend/internal/dms"
	sqlstore "dockspace/backend/internal/storage/sql"
)

// verify 对比磁盘上的 DMS 配置文件与按数据库状态计算出的期望内容。
//
// 默认修复检测到的漂移；--dry-run 只报告不修复。
// 退出码：0 文件一致或已修复，1 存在未修复的漂移，2 执行失败。
func main() {
	outputDir := flag.String("output-dir", "", "output directory (default: config dms.output_dir)")
	dryRun := flag.Bool("dry-run", false, "report drift without rewriting files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	if cfg.Database.Type == "" || cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "database is not configured (set DOCKSPACE_DATABASE_TYPE and DOCKSPACE_DATABASE_DSN)")
		os.Exit(2)
	}

	store, err := sqlstore.NewStore(
		cfg.Database.Type,
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(2)
	}
	defer store.Close()

	exporter := dms.NewExporter(store, cfg.DMS.OutputDir, nil, nil)
	result, err := exporter.Verify(*outputDir, !*dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
		os.Exit(2)
	}

	switch {
	case result.AllClean():
		fmt.Println("all DMS config files match the database state")
	case result.Rewritten:
		fmt.Printf("rewrote drifted files: %s\n", strings.Join(result.Drifted, ", "))
	default:
		fmt.Printf("drift detected in: %s\n", strings.Join(result.Drifted, ", "))
		os.Exit(1)
	}
}
