package datasource

import (
	"fmt"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("输入文件不存在")

// 分隔符文件内容有误
type ParseError struct {
	Line int // 出错的行号，从1开始计算。0表示未知
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("解析CSV出错：%v", e.Err)
	}
	return fmt.Sprintf("解析CSV第%d行出错：%v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
