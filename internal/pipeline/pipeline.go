package pipeline

import (
	"fmt"
	"github.com/packagewjx/phishing-dataset/internal/classify"
	"github.com/packagewjx/phishing-dataset/internal/datasource"
	"github.com/packagewjx/phishing-dataset/internal/preprocess"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Source struct {
	Path   string
	Spec   preprocess.SourceSpec
	Policy classify.Policy
}

type SourceReport struct {
	Name    string
	Read    int // 读取的行数
	Dropped int // 因必需字段为空删除的行数
	Labels  classify.Stats
}

type Pipeline struct {
	Sources []Source
	Logger  *zap.Logger
}

// 邮件在前，URL在后
func DefaultSources(emailPath, urlPath string) []Source {
	return []Source{
		{
			Path:   emailPath,
			Spec:   preprocess.EmailSource,
			Policy: classify.GetPolicy(classify.CategoricalPolicy),
		},
		{
			Path:   urlPath,
			Spec:   preprocess.URLSource,
			Policy: classify.GetPolicy(classify.NumericPolicy),
		},
	}
}

func New(sources []Source, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		Sources: sources,
		Logger:  logger,
	}
}

// 依次读取、规范化并计算每个数据源的类别，然后合并。任意数据源失败则整体失败
func (p *Pipeline) Run() (*core.Dataset, []SourceReport, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parts := make([][]*core.Record, 0, len(p.Sources))
	reports := make([]SourceReport, 0, len(p.Sources))
	for _, source := range p.Sources {
		records, report, err := processSource(source, logger.With(zap.String("source", source.Spec.Name)))
		if err != nil {
			return nil, reports, errors.Wrap(err, fmt.Sprintf("处理数据源%s出错", source.Spec.Name))
		}
		parts = append(parts, records)
		reports = append(reports, report)
	}

	ds := Merge(parts...)
	logger.Info("数据集合并完成", zap.Int("records", ds.Len()))
	return ds, reports, nil
}

func processSource(source Source, logger *zap.Logger) ([]*core.Record, SourceReport, error) {
	report := SourceReport{Name: source.Spec.Name}
	if source.Policy == nil {
		return nil, report, fmt.Errorf("没有指定标签策略")
	}

	logger.Info("读取数据中", zap.String("path", source.Path))
	table, err := datasource.OpenTable(source.Path)
	if err != nil {
		return nil, report, err
	}
	report.Read = len(table.Rows)

	result, err := preprocess.Normalize(table, source.Spec)
	if err != nil {
		return nil, report, err
	}
	report.Dropped = result.Dropped
	if result.Dropped > 0 {
		logger.Warn("删除了必需字段为空的行", zap.Int("dropped", result.Dropped))
	}

	records, stats := classify.Unify(result.Records, source.Policy)
	report.Labels = stats
	logger.Info("标签计算完成",
		zap.String("policy", string(source.Policy.Type())),
		zap.Int("total", stats.Total),
		zap.Int("positive", stats.Positive),
		zap.Int("negative", stats.Negative),
		zap.Int("defaulted", stats.Defaulted))
	if stats.AllNegative() {
		logger.Warn("本数据源没有任何钓鱼样本，请检查标签映射是否正确",
			zap.Int("total", stats.Total), zap.Int("defaulted", stats.Defaulted))
	}

	return records, report, nil
}
