package domain

import "time"

// MailAccount 表示一个真实的可投递邮箱账户。
// CredentialHash 保存带算法前缀的 crypt 格式哈希（如 {BLF-CRYPT}$2a$...），
// 导出引擎将其视为不透明字符串，原样写入 postfix-accounts.cf。
type MailAccount struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Address        string    `json:"address" gorm:"type:varchar(255);uniqueIndex"` // 小写规范化后的邮箱地址，全局唯一
	CredentialHash string    `json:"-" gorm:"type:varchar(255)"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Mailbox 返回规范化后的投递地址。
func (a *MailAccount) Mailbox() string {
	return NormalizeAddress(a.Address)
}
