package domain

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

// 验证相关的错误定义
var (
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrEmailTooLong         = errors.New("email address too long")
	ErrInvalidCredential    = errors.New("credential hash must carry a {SCHEME} prefix")
	ErrInvalidQuotaUnit     = errors.New("quota unit must be one of B/K/M/G/T")
	ErrQuotaSizeNotPositive = errors.New("quota size must be greater than zero")
)

// RFC 5322 邮箱地址长度上限
const MaxEmailLength = 254

// 凭据哈希必须带算法前缀，如 {SHA512-CRYPT} 或 {BLF-CRYPT}
var credentialSchemeRegex = regexp.MustCompile(`^\{[A-Z0-9-]+\}.+`)

// NormalizeAddress 对邮箱地址做边界规范化：去除首尾空白并转为小写。
// 所有进入存储或导出的地址都先经过这里。
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// ValidateAddress 验证规范化后的邮箱地址格式。
func ValidateAddress(address string) error {
	address = NormalizeAddress(address)
	if address == "" {
		return ErrInvalidEmail
	}
	if len(address) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return ErrInvalidEmail
	}
	// mail.ParseAddress 接受无域名的本地地址，这里要求完整的 user@domain
	parts := strings.Split(address, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ErrInvalidEmail
	}
	if !strings.Contains(parts[1], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateCredentialHash 验证凭据哈希是否带有算法前缀。
// 哈希内容本身不做解析，导出时原样透传给 DMS。
func ValidateCredentialHash(hash string) error {
	if !credentialSchemeRegex.MatchString(hash) {
		return ErrInvalidCredential
	}
	return nil
}

// ValidateQuota 验证配额取值与单位。
func ValidateQuota(sizeValue int, sizeUnit string) error {
	if sizeValue <= 0 {
		return ErrQuotaSizeNotPositive
	}
	if !ValidQuotaUnit(sizeUnit) {
		return ErrInvalidQuotaUnit
	}
	return nil
}
