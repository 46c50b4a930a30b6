package sql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage"
)

// Store SQL 数据库存储实现（支持 MySQL 5.7+ 和 PostgreSQL）
type Store struct {
	db         *sql.DB
	gormDB     *gorm.DB
	driverName string // "mysql" or "postgres"
}

// NewStore 创建SQL数据库存储
func NewStore(
	driverName string,
	dsn string,
	maxOpenConns int,
	maxIdleConns int,
	connMaxLifetime time.Duration,
) (*Store, error) {
	if driverName != "mysql" && driverName != "postgres" {
		return nil, fmt.Errorf("unsupported database driver: %s (supported: mysql, postgres)", driverName)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var gormDB *gorm.DB
	if driverName == "mysql" {
		gormDB, err = gorm.Open(mysql.New(mysql.Config{Conn: db}), gormConfig)
	} else {
		gormDB, err = gorm.Open(postgres.New(postgres.Config{Conn: db}), gormConfig)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize GORM: %w", err)
	}

	store := &Store{
		db:         db,
		gormDB:     gormDB,
		driverName: driverName,
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate 执行数据库迁移（使用GORM AutoMigrate）
func (s *Store) migrate() error {
	return s.gormDB.AutoMigrate(
		&domain.MailAccount{},
		&domain.MailAlias{},
		&domain.MailQuota{},
	)
}

// SaveAccount 新建或更新账户，保存前规范化地址。
func (s *Store) SaveAccount(account *domain.MailAccount) error {
	account.Address = domain.NormalizeAddress(account.Address)

	var existing domain.MailAccount
	err := s.gormDB.Where("address = ?", account.Address).First(&existing).Error
	switch {
	case err == nil:
		if existing.ID != account.ID {
			return storage.ErrAccountExists
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return s.gormDB.Save(account).Error
}

// GetAccount 按ID查询账户。
func (s *Store) GetAccount(id string) (*domain.MailAccount, error) {
	var account domain.MailAccount
	if err := s.gormDB.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountByAddress 按规范化地址查询账户。
func (s *Store) GetAccountByAddress(address string) (*domain.MailAccount, error) {
	var account domain.MailAccount
	err := s.gormDB.Where("address = ?", domain.NormalizeAddress(address)).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ListAccounts 返回全部账户。
func (s *Store) ListAccounts() ([]domain.MailAccount, error) {
	var accounts []domain.MailAccount
	if err := s.gormDB.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// DeleteAccount 删除账户及其关联的别名与配额。
func (s *Store) DeleteAccount(id string) error {
	return s.gormDB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.MailAccount{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrAccountNotFound
		}
		if err := tx.Delete(&domain.MailAlias{}, "account_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.MailQuota{}, "account_id = ?", id).Error
	})
}

// SaveAlias 新建或更新别名，保存前规范化别名地址。
func (s *Store) SaveAlias(alias *domain.MailAlias) error {
	alias.Alias = domain.NormalizeAddress(alias.Alias)

	var existing domain.MailAlias
	err := s.gormDB.Where("alias = ?", alias.Alias).First(&existing).Error
	switch {
	case err == nil:
		if existing.ID != alias.ID {
			return storage.ErrAliasExists
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return s.gormDB.Save(alias).Error
}

// GetAlias 按ID查询别名。
func (s *Store) GetAlias(id string) (*domain.MailAlias, error) {
	var alias domain.MailAlias
	if err := s.gormDB.First(&alias, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrAliasNotFound
		}
		return nil, err
	}
	return &alias, nil
}

// GetAliasByAddress 按规范化别名地址查询别名。
func (s *Store) GetAliasByAddress(address string) (*domain.MailAlias, error) {
	var alias domain.MailAlias
	err := s.gormDB.Where("alias = ?", domain.NormalizeAddress(address)).First(&alias).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrAliasNotFound
		}
		return nil, err
	}
	return &alias, nil
}

// ListAliases 返回全部别名。
func (s *Store) ListAliases() ([]domain.MailAlias, error) {
	var aliases []domain.MailAlias
	if err := s.gormDB.Find(&aliases).Error; err != nil {
		return nil, err
	}
	return aliases, nil
}

// DeleteAlias 按ID删除别名。
func (s *Store) DeleteAlias(id string) error {
	result := s.gormDB.Delete(&domain.MailAlias{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrAliasNotFound
	}
	return nil
}

// DeleteAliasesByAddress 删除与给定地址相同的所有别名，返回删除数量。
// 别名在写入时已规范化为小写，直接按小写值匹配即可。
func (s *Store) DeleteAliasesByAddress(address string) (int, error) {
	address = domain.NormalizeAddress(address)
	if address == "" {
		return 0, nil
	}
	result := s.gormDB.Delete(&domain.MailAlias{}, "alias = ?", address)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// SaveQuota 新建或更新配额，每个账户至多一条。
func (s *Store) SaveQuota(quota *domain.MailQuota) error {
	var existing domain.MailQuota
	err := s.gormDB.Where("account_id = ?", quota.AccountID).First(&existing).Error
	switch {
	case err == nil:
		if existing.ID != quota.ID {
			return storage.ErrQuotaExists
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return s.gormDB.Save(quota).Error
}

// GetQuota 按ID查询配额。
func (s *Store) GetQuota(id string) (*domain.MailQuota, error) {
	var quota domain.MailQuota
	if err := s.gormDB.First(&quota, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrQuotaNotFound
		}
		return nil, err
	}
	return &quota, nil
}

// GetQuotaByAccountID 查询账户的配额。
func (s *Store) GetQuotaByAccountID(accountID string) (*domain.MailQuota, error) {
	var quota domain.MailQuota
	err := s.gormDB.Where("account_id = ?", accountID).First(&quota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrQuotaNotFound
		}
		return nil, err
	}
	return &quota, nil
}

// ListQuotas 返回全部配额。
func (s *Store) ListQuotas() ([]domain.MailQuota, error) {
	var quotas []domain.MailQuota
	if err := s.gormDB.Find(&quotas).Error; err != nil {
		return nil, err
	}
	return quotas, nil
}

// DeleteQuota 按ID删除配额。
func (s *Store) DeleteQuota(id string) error {
	result := s.gormDB.Delete(&domain.MailQuota{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrQuotaNotFound
	}
	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Health 检查数据库健康状态
func (s *Store) Health() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Ping()
}
