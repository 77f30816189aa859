package datasource

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"io"
	"os"
)

// 读取第一行为表头的CSV内容。不同数据源的列不同，因此不做任何列校验
func ReadTable(in io.Reader) (*core.Table, error) {
	// 去掉部分导出工具写入的BOM，否则第一个列名无法匹配
	reader := csv.NewReader(transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	// 邮件正文中经常出现未转义的引号
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("文件为空，没有表头")}
	} else if err != nil {
		return nil, toParseError(err)
	}

	table := &core.Table{
		Columns: header,
		Rows:    make([][]string, 0, 1024),
	}

	var record []string
	for record, err = reader.Read(); err == nil; record, err = reader.Read() {
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("字段数量%d多于表头的%d个", len(record), len(header)),
			}
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}
	if err != io.EOF {
		return nil, toParseError(err)
	}

	return table, nil
}

// 打开并读取文件。文件不存在时返回的错误可以通过errors.Is与ErrNotFound比较
func OpenTable(path string) (*core.Table, error) {
	fin, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(notFound{path: path}, "打开输入文件错误")
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("打开输入文件%s错误", path))
	}
	defer func() {
		_ = fin.Close()
	}()

	table, err := ReadTable(fin)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("读取%s出错", path))
	}
	return table, nil
}

type notFound struct {
	path string
}

func (n notFound) Error() string {
	return fmt.Sprintf("%s：%s", ErrNotFound.Error(), n.path)
}

func (n notFound) Is(target error) bool {
	return target == ErrNotFound
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}
