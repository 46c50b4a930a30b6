package domain

import (
	"fmt"
	"time"
)

// 配额单位的单字母代码，与 dovecot-quotas.cf 的后缀一致。
const (
	QuotaUnitBytes = "B"
	QuotaUnitKiB   = "K"
	QuotaUnitMiB   = "M"
	QuotaUnitGiB   = "G"
	QuotaUnitTiB   = "T"
)

// ValidQuotaUnit 判断单位代码是否合法。
func ValidQuotaUnit(unit string) bool {
	switch unit {
	case QuotaUnitBytes, QuotaUnitKiB, QuotaUnitMiB, QuotaUnitGiB, QuotaUnitTiB:
		return true
	}
	return false
}

// MailQuota 表示单个账户的存储配额，每个账户至多一条。
type MailQuota struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AccountID string    `json:"accountId" gorm:"type:varchar(36);uniqueIndex;not null"` // 每个账户唯一
	SizeValue int       `json:"sizeValue"`                                              // 必须大于 0
	SizeUnit  string    `json:"sizeUnit" gorm:"type:varchar(1)"`                        // B/K/M/G/T
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuotaString 返回值与单位直接拼接的配额表示，如 "10G"。
func (q *MailQuota) QuotaString() string {
	return fmt.Sprintf("%d%s", q.SizeValue, q.SizeUnit)
}
