package classify

import "github.com/packagewjx/phishing-dataset/pkg/core"

type Stats struct {
	Total     int
	Positive  int
	Negative  int
	Defaulted int // 无法解析而使用默认类别的数量，计入Negative
}

// 批次非空但没有任何正类。通常意味着标签映射有误，需要在日志中提示
func (s Stats) AllNegative() bool {
	return s.Total > 0 && s.Positive == 0
}

// 为每条记录计算类别。本函数不会失败，最坏情况下所有记录都为0
func Unify(raws []*core.RawRecord, policy Policy) ([]*core.Record, Stats) {
	stats := Stats{Total: len(raws)}
	records := make([]*core.Record, len(raws))
	for i, raw := range raws {
		decision := policy.Label(raw.LabelRaw)
		if decision.Label == 1 {
			stats.Positive++
		} else {
			stats.Negative++
		}
		if decision.Defaulted {
			stats.Defaulted++
		}
		records[i] = &core.Record{
			Data:       raw.Data,
			SourceType: raw.SourceType,
			Label:      decision.Label,
		}
	}
	return records, stats
}
