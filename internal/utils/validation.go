package utils

import "strings"

// NormalizeProjectName 把项目名归一化成用于唯一性比较的形式。
// 项目名的唯一性不区分大小写，所有唯一性检查都必须先经过这里，
// 不允许在别的地方用正则或者其它方式做大小写无关的匹配。
func NormalizeProjectName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
