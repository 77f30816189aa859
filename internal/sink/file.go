package sink

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/phishing-dataset/internal/utils"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"github.com/pkg/errors"
	"io"
	"os"
	"strconv"
)

// 写出文件失败。此时文件内容不可信
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("写入文件%s出错：%v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func WriteCSV(out io.Writer, ds *core.Dataset) error {
	writer := csv.NewWriter(out)

	err := writer.Write([]string{core.HeaderData, core.HeaderType, core.HeaderClass})
	if err != nil {
		return errors.Wrap(err, "写入表头出错")
	}

	for i, record := range ds.Records {
		err = writer.Write([]string{record.Data, record.SourceType.String(), strconv.Itoa(record.Label)})
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据出错", i))
		}
	}

	writer.Flush()
	return writer.Error()
}

// 写出到path，已存在的文件将被覆盖。返回写入的字节数
func WriteFile(path string, ds *core.Dataset) (uint64, error) {
	fout, err := os.Create(path)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}

	counter := &utils.WriterCounter{Writer: fout}
	err = WriteCSV(counter, ds)
	closeErr := fout.Close()
	if err != nil {
		return counter.Count, &IOError{Path: path, Err: err}
	}
	if closeErr != nil {
		return counter.Count, &IOError{Path: path, Err: closeErr}
	}
	return counter.Count, nil
}
