package core

import (
	"fmt"
	"strings"
)

// 输出文件的表头
const (
	HeaderData  = "Phishing Data"
	HeaderType  = "Phishing Type"
	HeaderClass = "Phishing Class"
)

const (
	ClassBenign   = 0
	ClassPhishing = 1
)

type SourceType int

const (
	Mail SourceType = iota + 1
	URL
)

// 写入CSV文件时使用的值
func (s SourceType) String() string {
	switch s {
	case Mail:
		return "Mail"
	case URL:
		return "URL"
	default:
		return fmt.Sprintf("SourceType(%d)", int(s))
	}
}

// 写入数据库ENUM字段时使用的值
func (s SourceType) DBValue() string {
	return strings.ToLower(s.String())
}

func ParseSourceType(s string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mail":
		return Mail, nil
	case "url":
		return URL, nil
	default:
		return 0, fmt.Errorf("未知的数据类型：%q", s)
	}
}

type Record struct {
	Data       string
	SourceType SourceType
	Label      int // 0为正常，1为钓鱼
}

// 经过列名规范化后，尚未计算标签的记录
type RawRecord struct {
	Data       string
	SourceType SourceType
	LabelRaw   string
}

type Dataset struct {
	Records []*Record
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

func (d *Dataset) CountBy(sourceType SourceType, label int) int {
	cnt := 0
	for _, record := range d.Records {
		if record.SourceType == sourceType && record.Label == label {
			cnt++
		}
	}
	return cnt
}

// 从分隔符文件读取的原始表格。第一行为表头
type Table struct {
	Columns []string
	Rows    [][]string
}

// 返回列名完全一致的列序号，不存在则返回-1
func (t *Table) ColumnIndex(name string) int {
	for i, column := range t.Columns {
		if column == name {
			return i
		}
	}
	return -1
}
