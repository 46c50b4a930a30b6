package main

import (
	"flag"
	"fmt"
	"os"

	"dockspace/backend/internal/config"
	"dockspace/backend/internal/dms"
	sqlstore "dockspace/backend/internal/storage/sql"
)

// export 从数据库状态重新生成全部 DMS 配置文件。
// 重复执行幂等，可安全用于初始化或手动恢复。
func main() {
	outputDir := flag.String("output-dir", "", "output directory (default: config dms.output_dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.Type == "" || cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "database is not configured (set DOCKSPACE_DATABASE_TYPE and DOCKSPACE_DATABASE_DSN)")
		os.Exit(1)
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
		os.Exit(1)
	}
	defer store.Close()

	exporter := dms.NewExporter(store, cfg.DMS.OutputDir, nil, nil)
	if err := exporter.ExportAll(*outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("DMS config files written to %s\n", exporter.OutputDir(*outputDir))
}
