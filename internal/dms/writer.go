package dms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeContent 把行序列规范化为最终文件内容：
// 去掉每行尾部空白，丢弃空行，行间以单个换行符连接；
// 内容非空时以恰好一个换行符结尾，零记录时返回空串。
func NormalizeContent(lines []string) string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	if len(cleaned) == 0 {
		return ""
	}
	return strings.Join(cleaned, "\n") + "\n"
}

// WriteLines 将行序列规范化后整体写入目标文件（覆盖语义），
// 父目录不存在时自动创建。
func WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(NormalizeContent(lines)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
