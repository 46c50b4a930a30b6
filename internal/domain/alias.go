package domain

import "time"

// MailAlias 表示一个转发地址，指向唯一的目标账户，本身不可投递。
// 别名地址不允许与任何 MailAccount 的地址相同（不允许遮蔽真实邮箱）。
type MailAlias struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Alias     string    `json:"alias" gorm:"type:varchar(255);uniqueIndex"`       // 对外暴露的别名地址
	AccountID string    `json:"accountId" gorm:"type:varchar(36);index;not null"` // 目标账户ID
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
