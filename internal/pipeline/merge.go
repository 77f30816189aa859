package pipeline

import "github.com/packagewjx/phishing-dataset/pkg/core"

// 按给定顺序拼接各个数据源的记录，保持各自的顺序，不去重
func Merge(parts ...[]*core.Record) *core.Dataset {
	total := 0
	for _, part := range parts {
		total += len(part)
	}
	ds := &core.Dataset{Records: make([]*core.Record, 0, total)}
	for _, part := range parts {
		ds.Records = append(ds.Records, part...)
	}
	return ds
}
