package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"dockspace/backend/internal/config"
	"dockspace/backend/internal/dms"
	"dockspace/backend/internal/service"
	sqlstore "dockspace/backend/internal/storage/sql"
)

// set-password 轮换指定账户的凭据并立即重新导出配置文件。
// 密码从标准输入读取，避免出现在进程参数和 shell 历史里。
func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: set-password <address>")
		os.Exit(1)
	}
	address := flag.Arg(0)

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

	fmt.Fprint(os.Stderr, "New password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	password = strings.TrimRight(password, "\r\n")

	exporter := dms.NewExporter(store, cfg.DMS.OutputDir, nil, nil)
	hooks := dms.NewHooks(exporter, store, nil, nil)
	accounts := service.NewAccountService(store, hooks)

	if err := accounts.SetPassword(address, password); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set password: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("password updated for %s\n", address)
}
