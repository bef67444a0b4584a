// Package i18n holds the message catalog used to label prompts, status
// lines, and errors. The catalog never influences control flow.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supported)

// Messages is a locale-resolved message table, built once at startup and
// read-only afterwards.
type Messages struct {
	tag   language.Tag
	table map[string]string
}

// Resolve matches a POSIX-style locale string (e.g. "zh_CN.UTF-8") against
// the supported languages, falling back to English.
func Resolve(locale string) *Messages {
	tag := language.English
	if norm := normalize(locale); norm != "" {
		if parsed, err := language.Parse(norm); err == nil {
			tag = parsed
		}
	}
	_, index, _ := matcher.Match(tag)
	resolved := supported[index]
	return &Messages{
		tag:   resolved,
		table: catalog[resolved],
	}
}

func (m *Messages) Lang() language.Tag {
	return m.tag
}

// T renders a message key with fmt arguments. Unknown keys fall back to the
// English table, then to the key itself.
func (m *Messages) T(key string, args ...any) string {
	tmpl, ok := m.table[key]
	if !ok {
		tmpl, ok = catalog[language.English][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// normalize turns "zh_CN.UTF-8" or "en_US@euro" into a BCP 47 candidate.
func normalize(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.TrimSpace(locale)
	if locale == "" || strings.EqualFold(locale, "C") || strings.EqualFold(locale, "POSIX") {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

var catalog = map[language.Tag]map[string]string{
	language.English: {
		"moving":     "Moving %s → %s",
		"copying":    "Copying %s → %s",
		"renaming":   "Renaming %s → %s",
		"removing":   "Removing %s",
		"backing_up": "Backing up %s → %s",

		"move_complete":   "Move completed successfully",
		"copy_complete":   "Copy completed successfully",
		"rename_complete": "Rename completed successfully",
		"remove_complete": "Remove completed successfully",
		"backup_complete": "Backup completed successfully",

		"dir_not_exist": "Target directory does not exist, create: %s ? [Y/n] ",
		"creating_dirs": "Creating directories: %s",
		"dir_created":   "Directory created: %s",

		"file_exists":      "File exists: %s",
		"overwrite_prompt": "[Y]Yes(default) [n]No [a]All [s]Skip all [q]Quit: ",
		"skipped":          "Skipped: %s",
		"source_retained":  "Source retained after copy: %s",

		"error_invalid_request":   "Error: Invalid invocation: %s",
		"error_file_not_found":    "Error: File not found: %s",
		"error_target_is_file":    "Error: Target must be directory: %s",
		"error_permission_denied": "Error: Permission denied: %s",
		"error_disk_full":         "Error: Insufficient disk space: %s",
		"error_same_file":         "Error: Source and target are the same file: %s",
		"error_target_in_source":  "Error: Target directory is inside source directory: %s",
		"error_cross_device":      "Error: Operation crossed filesystem boundaries: %s",
		"error_trash_unavailable": "Error: No recoverable delete store reachable: %s",
		"error_io":                "Error: I/O failure: %s",
		"error_missing_target":    "Error: Target directory does not exist: %s",
		"error_unexpected":        "Error: Unexpected failure: %s",

		"progress_items":      "Processing %d/%d items",
		"operation_cancelled": "Operation cancelled",
		"summary":             "%d/%d items succeeded (%d skipped, %d failed, %d aborted)",
	},
	language.SimplifiedChinese: {
		"moving":     "移动 %s → %s",
		"copying":    "复制 %s → %s",
		"renaming":   "重命名 %s → %s",
		"removing":   "删除 %s",
		"backing_up": "备份 %s → %s",

		"move_complete":   "移动完成",
		"copy_complete":   "复制完成",
		"rename_complete": "重命名完成",
		"remove_complete": "删除完成",
		"backup_complete": "备份完成",

		"dir_not_exist": "目标目录不存在，是否创建: %s ? [Y/n] ",
		"creating_dirs": "创建目录: %s",
		"dir_created":   "目录已创建: %s",

		"file_exists":      "文件已存在: %s",
		"overwrite_prompt": "[Y]是(默认) [n]否 [a]全部 [s]跳过全部 [q]退出: ",
		"skipped":          "已跳过: %s",
		"source_retained":  "复制后源文件已保留: %s",

		"error_invalid_request":   "错误：无效的调用：%s",
		"error_file_not_found":    "错误：文件不存在：%s",
		"error_target_is_file":    "错误：目标必须是目录：%s",
		"error_permission_denied": "错误：权限不足：%s",
		"error_disk_full":         "错误：磁盘空间不足：%s",
		"error_same_file":         "错误：源文件和目标文件相同：%s",
		"error_target_in_source":  "错误：目标目录在源目录内部：%s",
		"error_cross_device":      "错误：操作跨越了文件系统边界：%s",
		"error_trash_unavailable": "错误：回收站不可用：%s",
		"error_io":                "错误：读写失败：%s",
		"error_missing_target":    "错误：目标目录不存在：%s",
		"error_unexpected":        "错误：意外失败：%s",

		"progress_items":      "正在处理 %d/%d 个项目",
		"operation_cancelled": "操作已取消",
		"summary":             "%d/%d 个项目成功（跳过 %d，失败 %d，中止 %d）",
	},
}
