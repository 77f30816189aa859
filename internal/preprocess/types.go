package preprocess

import (
	"fmt"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"strings"
)

// 描述一个数据源的列映射
type SourceSpec struct {
	Name        string
	SourceType  core.SourceType
	DataColumn  string
	LabelColumn string
}

var EmailSource = SourceSpec{
	Name:        "email",
	SourceType:  core.Mail,
	DataColumn:  "Email Text",
	LabelColumn: "Email Type",
}

var URLSource = SourceSpec{
	Name:        "url",
	SourceType:  core.URL,
	DataColumn:  "url",
	LabelColumn: "status",
}

// 缺少必需的列
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("缺少必需的列：[%s]，实际的列为：[%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// 对表格逐行过滤。返回的表格不与输入共享行
type RowFilter interface {
	Name() string
	Filter(table *core.Table) (*core.Table, error)
}

type FilterReport struct {
	Stage  string
	Before int
	After  int
}

func (r FilterReport) Dropped() int {
	return r.Before - r.After
}

// 依次执行各个过滤器，遇到错误立即返回
func Run(table *core.Table, filters ...RowFilter) (*core.Table, []FilterReport, error) {
	reports := make([]FilterReport, 0, len(filters))
	for _, filter := range filters {
		before := len(table.Rows)
		out, err := filter.Filter(table)
		if err != nil {
			return nil, reports, err
		}
		reports = append(reports, FilterReport{
			Stage:  filter.Name(),
			Before: before,
			After:  len(out.Rows),
		})
		table = out
	}
	return table, reports, nil
}
