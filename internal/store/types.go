package store

import (
	"fmt"
)

// 连接数据库失败
type ConnectionError struct {
	Addr     string
	Database string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Database == "" {
		return fmt.Sprintf("连接数据库%s出错：%v", e.Addr, e.Err)
	}
	return fmt.Sprintf("连接数据库%s/%s出错：%v", e.Addr, e.Database, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// 插入某一批次失败，该批次已回滚
type InsertError struct {
	Offset int // 批次第一行在全部数据中的位置
	Size   int
	Err    error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("插入第%d至%d行出错：%v", e.Offset+1, e.Offset+e.Size, e.Err)
}

func (e *InsertError) Unwrap() error {
	return e.Err
}

type TypeClassCount struct {
	PhishingType  string
	PhishingClass int
	Count         int64
}

type UploadResult struct {
	Total          int // 清洗后需要插入的行数
	Inserted       int // 已提交的行数
	DroppedMissing int // 必需字段为空而删除的行数
	DroppedInvalid int // 类别或类型不合法而删除的行数
}
