package preprocess

import (
	"github.com/packagewjx/phishing-dataset/internal/utils"
	"github.com/packagewjx/phishing-dataset/pkg/core"
)

type Result struct {
	Records []*core.RawRecord
	Dropped int // 必需字段为空而被删除的行数
}

// 按照数据源的列映射，将原始表格转换为统一的(data, source_type, label_raw)记录。
// 列名在匹配前会被规范化，因此"Email Text"与" email text"视为同一列。
func Normalize(table *core.Table, spec SourceSpec) (*Result, error) {
	columns := utils.NormalizeColumnNames(table.Columns)
	dataColumn := utils.NormalizeColumnName(spec.DataColumn)
	labelColumn := utils.NormalizeColumnName(spec.LabelColumn)

	missing := utils.MissingColumns(columns, []string{dataColumn, labelColumn})
	if len(missing) != 0 {
		return nil, &SchemaError{Missing: missing, Found: columns}
	}

	normalized := &core.Table{Columns: columns, Rows: table.Rows}
	dataIdx := normalized.ColumnIndex(dataColumn)
	labelIdx := normalized.ColumnIndex(labelColumn)

	result := &Result{Records: make([]*core.RawRecord, 0, len(table.Rows))}
	for _, row := range table.Rows {
		data, label := cell(row, dataIdx), cell(row, labelIdx)
		if utils.IsBlank(data) || utils.IsBlank(label) {
			result.Dropped++
			continue
		}
		result.Records = append(result.Records, &core.RawRecord{
			Data:       data,
			SourceType: spec.SourceType,
			LabelRaw:   label,
		})
	}
	return result, nil
}
