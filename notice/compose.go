package notice

import (
	"fmt"
	"strings"
)

// FormatDuration renders a mute duration like "1天 2小时 3分钟 4秒". Zero
// components are omitted, but the result is never empty: zero seconds still
// renders as "0秒".
func FormatDuration(seconds int64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d天", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d小时", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d分钟", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d秒", secs))
	}
	return strings.Join(parts, " ")
}

// AlertText renders the supervisor alert for n. operatorName may be empty
// for categories whose template does not name the operator.
func AlertText(n *Notice, groupName, operatorName string) string {
	switch n.Category {
	case Mute:
		return fmt.Sprintf("呜呜ww..主人，我在 %s 被 %s 禁言了%s", groupName, operatorName, FormatDuration(n.Duration))
	case Unmute:
		return fmt.Sprintf("好耶！%s 在 %s 解除了我的禁言", operatorName, groupName)
	case AdminSet:
		return fmt.Sprintf("哇！我成为了 %s 的管理员", groupName)
	case AdminUnset:
		return fmt.Sprintf("呜呜ww..我在 %s 的管理员被撤了", groupName)
	case Kicked:
		return fmt.Sprintf("呜呜ww..我被 %s 踢出了 %s", operatorName, groupName)
	case Invited:
		return fmt.Sprintf("主人..我被 %s 拉进了 %s", operatorName, groupName)
	}
	return ""
}
