package preprocess

import (
	"github.com/packagewjx/phishing-dataset/internal/utils"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"math"
	"strconv"
	"strings"
)

// 删除任意一个指定列为空的行
func DropMissing(columns ...string) RowFilter {
	return &dropMissing{columns: columns}
}

type dropMissing struct {
	columns []string
}

func (d *dropMissing) Name() string {
	return "drop-missing"
}

func (d *dropMissing) Filter(table *core.Table) (*core.Table, error) {
	idx, err := columnIndexes(table, d.columns)
	if err != nil {
		return nil, err
	}

	out := &core.Table{Columns: table.Columns, Rows: make([][]string, 0, len(table.Rows))}
rows:
	for _, row := range table.Rows {
		for _, i := range idx {
			if utils.IsBlank(cell(row, i)) {
				continue rows
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// 将列转换为整数，无法转换的行删除。小数部分直接截断
func CoerceInteger(column string) RowFilter {
	return &coerceInteger{column: column}
}

type coerceInteger struct {
	column string
}

func (c *coerceInteger) Name() string {
	return "coerce-integer"
}

func (c *coerceInteger) Filter(table *core.Table) (*core.Table, error) {
	idx, err := columnIndexes(table, []string{c.column})
	if err != nil {
		return nil, err
	}
	i := idx[0]

	out := &core.Table{Columns: table.Columns, Rows: make([][]string, 0, len(table.Rows))}
	for _, row := range table.Rows {
		f, err := strconv.ParseFloat(strings.TrimSpace(cell(row, i)), 64)
		if err != nil || math.IsNaN(f) || f > math.MaxInt16 || f < math.MinInt16 {
			continue
		}
		copied := padRow(row, len(table.Columns))
		copied[i] = strconv.Itoa(int(f))
		out.Rows = append(out.Rows, copied)
	}
	return out, nil
}

// 将列的值去除空白并转为小写
func LowerValues(column string) RowFilter {
	return &lowerValues{column: column}
}

type lowerValues struct {
	column string
}

func (l *lowerValues) Name() string {
	return "lower-values"
}

func (l *lowerValues) Filter(table *core.Table) (*core.Table, error) {
	idx, err := columnIndexes(table, []string{l.column})
	if err != nil {
		return nil, err
	}
	i := idx[0]

	out := &core.Table{Columns: table.Columns, Rows: make([][]string, len(table.Rows))}
	for ri, row := range table.Rows {
		copied := padRow(row, len(table.Columns))
		copied[i] = strings.ToLower(strings.TrimSpace(copied[i]))
		out.Rows[ri] = copied
	}
	return out, nil
}

// 仅保留列值在allowed中的行
func RestrictValues(column string, allowed ...string) RowFilter {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return &restrictValues{column: column, allowed: set}
}

type restrictValues struct {
	column  string
	allowed map[string]struct{}
}

func (r *restrictValues) Name() string {
	return "restrict-values"
}

func (r *restrictValues) Filter(table *core.Table) (*core.Table, error) {
	idx, err := columnIndexes(table, []string{r.column})
	if err != nil {
		return nil, err
	}
	i := idx[0]

	out := &core.Table{Columns: table.Columns, Rows: make([][]string, 0, len(table.Rows))}
	for _, row := range table.Rows {
		if _, ok := r.allowed[cell(row, i)]; ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

func columnIndexes(table *core.Table, columns []string) ([]int, error) {
	missing := utils.MissingColumns(table.Columns, columns)
	if len(missing) != 0 {
		return nil, &SchemaError{Missing: missing, Found: table.Columns}
	}
	idx := make([]int, len(columns))
	for i, column := range columns {
		idx[i] = table.ColumnIndex(column)
	}
	return idx, nil
}

// 行的长度可能小于表头，缺失的单元格视为空
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func padRow(row []string, width int) []string {
	copied := append(make([]string, 0, width), row...)
	for len(copied) < width {
		copied = append(copied, "")
	}
	return copied
}
