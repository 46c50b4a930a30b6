package dms

import (
	"fmt"
	"sort"

	"dockspace/backend/internal/domain"
)

// RecordSource 是导出引擎对关系存储的只读视图。
// storage.Store 满足该接口；测试中可以用任意实现替代。
type RecordSource interface {
	ListAccounts() ([]domain.MailAccount, error)
	ListAliases() ([]domain.MailAlias, error)
	ListQuotas() ([]domain.MailQuota, error)
}

// Skip 记录一条在导出时被跳过的记录及原因。
// 导出是逐条尽力而为的：单条坏数据只产生一条 Skip，不会中断其余记录。
type Skip struct {
	Record string // 被跳过记录的标识（地址，地址为空时用ID）
	Reason string
}

// BuildAccountLines 把账户集合投影为 postfix-accounts.cf 的行序列。
// 输出按规范化地址升序排列；地址或凭据为空的记录被跳过。
func BuildAccountLines(accounts []domain.MailAccount) ([]string, []Skip) {
	sorted := make([]domain.MailAccount, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Mailbox() < sorted[j].Mailbox()
	})

	var lines []string
	var skips []Skip
	for _, account := range sorted {
		address := account.Mailbox()
		if address == "" {
			skips = append(skips, Skip{Record: account.ID, Reason: "account has no address"})
			continue
		}
		if account.CredentialHash == "" {
			skips = append(skips, Skip{Record: address, Reason: "missing credential hash"})
			continue
		}
		lines = append(lines, fmt.Sprintf("%s|%s", address, account.CredentialHash))
	}
	return lines, skips
}

// BuildVirtualLines 把别名集合投影为 postfix-virtual.cf 的行序列。
// 目标账户通过预取的账户集合关联（避免逐条回查存储）。
// 与真实邮箱地址冲突的别名被过滤掉：真实邮箱优先于未被写入校验
// 拦截的陈旧别名。输出按别名地址升序排列。
func BuildVirtualLines(aliases []domain.MailAlias, accounts []domain.MailAccount) ([]string, []Skip) {
	mailboxes := make(map[string]struct{}, len(accounts))
	byID := make(map[string]string, len(accounts))
	for _, account := range accounts {
		address := account.Mailbox()
		if address != "" {
			mailboxes[address] = struct{}{}
		}
		byID[account.ID] = address
	}

	sorted := make([]domain.MailAlias, len(aliases))
	copy(sorted, aliases)
	sort.Slice(sorted, func(i, j int) bool {
		return domain.NormalizeAddress(sorted[i].Alias) < domain.NormalizeAddress(sorted[j].Alias)
	})

	var lines []string
	var skips []Skip
	for _, alias := range sorted {
		address := domain.NormalizeAddress(alias.Alias)
		if address == "" {
			skips = append(skips, Skip{Record: alias.ID, Reason: "alias has no address"})
			continue
		}
		if _, shadowed := mailboxes[address]; shadowed {
			// 真实邮箱存在时不导出同名别名，避免投递冲突。
			skips = append(skips, Skip{Record: address, Reason: "shadows an existing mailbox"})
			continue
		}
		recipient, ok := byID[alias.AccountID]
		if !ok || recipient == "" {
			skips = append(skips, Skip{Record: address, Reason: "target account has no address"})
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", address, recipient))
	}
	return lines, skips
}

// BuildQuotaLines 把配额集合投影为 dovecot-quotas.cf 的行序列。
// 数值与单位直接拼接（如 10G），输出按账户地址升序排列。
func BuildQuotaLines(quotas []domain.MailQuota, accounts []domain.MailAccount) ([]string, []Skip) {
	byID := make(map[string]string, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account.Mailbox()
	}

	sorted := make([]domain.MailQuota, len(quotas))
	copy(sorted, quotas)
	sort.Slice(sorted, func(i, j int) bool {
		return byID[sorted[i].AccountID] < byID[sorted[j].AccountID]
	})

	var lines []string
	var skips []Skip
	for _, quota := range sorted {
		address, ok := byID[quota.AccountID]
		if !ok || address == "" {
			skips = append(skips, Skip{Record: quota.ID, Reason: "account has no address"})
			continue
		}
		lines = append(lines, fmt.Sprintf("%s:%s", address, quota.QuotaString()))
	}
	return lines, skips
}
