package utils

import (
	"io"
	"strings"
)

// 去除两端空白，转为小写，并将空格替换为下划线
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func NormalizeColumnNames(names []string) []string {
	result := make([]string, len(names))
	for i, name := range names {
		result[i] = NormalizeColumnName(name)
	}
	return result
}

// 返回required中不在columns中的列名，保持required的顺序
func MissingColumns(columns []string, required []string) []string {
	set := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		set[column] = struct{}{}
	}
	missing := make([]string, 0)
	for _, r := range required {
		if _, ok := set[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// 统计写入字节数，用于输出完成后报告文件大小
type WriterCounter struct {
	Writer io.Writer
	Count  uint64
}

func (w *WriterCounter) Write(p []byte) (int, error) {
	n, err := w.Writer.Write(p)
	w.Count += uint64(n)
	return n, err
}
