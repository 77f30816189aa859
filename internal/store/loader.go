package store

import (
	"github.com/packagewjx/phishing-dataset/internal/preprocess"
	"github.com/packagewjx/phishing-dataset/internal/utils"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"go.uber.org/zap"
	"strconv"
)

// 规范化后的列名
const (
	ColumnData  = "phishing_data"
	ColumnType  = "phishing_type"
	ColumnClass = "phishing_class"
)

var RequiredColumns = []string{ColumnData, ColumnType, ColumnClass}

// 分批将数据写入数据库。每个批次单独提交，遇到第一个失败的批次即停止
type Loader struct {
	Writer    BatchWriter
	BatchSize int
	Logger    *zap.Logger
}

func NewLoader(writer BatchWriter, batchSize int, logger *zap.Logger) *Loader {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		Writer:    writer,
		BatchSize: batchSize,
		Logger:    logger.Named("loader"),
	}
}

// 上传合并后的CSV表格。列名会先规范化，因此"Phishing Data"与"phishing_data"都可以接受
func (l *Loader) Upload(table *core.Table) (*UploadResult, error) {
	result := &UploadResult{}
	normalized := &core.Table{
		Columns: utils.NormalizeColumnNames(table.Columns),
		Rows:    table.Rows,
	}
	if missing := utils.MissingColumns(normalized.Columns, RequiredColumns); len(missing) != 0 {
		return result, &preprocess.SchemaError{Missing: missing, Found: normalized.Columns}
	}

	cleaned, reports, err := preprocess.Run(normalized,
		preprocess.DropMissing(RequiredColumns...),
		preprocess.CoerceInteger(ColumnClass),
		preprocess.LowerValues(ColumnType),
		preprocess.RestrictValues(ColumnType, core.Mail.DBValue(), core.URL.DBValue()))
	if err != nil {
		return result, err
	}
	for _, report := range reports {
		if report.Stage == "drop-missing" {
			result.DroppedMissing += report.Dropped()
		} else {
			result.DroppedInvalid += report.Dropped()
		}
	}
	if result.DroppedMissing > 0 {
		l.logger().Warn("删除了必需字段为空的行", zap.Int("dropped", result.DroppedMissing))
	}
	if result.DroppedInvalid > 0 {
		l.logger().Warn("删除了phishing_class或phishing_type不合法的行", zap.Int("dropped", result.DroppedInvalid))
	}

	dataIdx := cleaned.ColumnIndex(ColumnData)
	typeIdx := cleaned.ColumnIndex(ColumnType)
	classIdx := cleaned.ColumnIndex(ColumnClass)
	records := make([]*PhishingDataDO, len(cleaned.Rows))
	for i, row := range cleaned.Rows {
		// CoerceInteger已保证可以解析
		class, _ := strconv.Atoi(row[classIdx])
		records[i] = &PhishingDataDO{
			PhishingData:  row[dataIdx],
			PhishingType:  row[typeIdx],
			PhishingClass: int16(class),
		}
	}

	return result, l.insertAll(records, result)
}

// 不经过CSV文件，直接上传合并后的数据集
func (l *Loader) UploadDataset(ds *core.Dataset) (*UploadResult, error) {
	records := make([]*PhishingDataDO, ds.Len())
	for i, record := range ds.Records {
		records[i] = NewPhishingDataDO(record)
	}
	result := &UploadResult{}
	return result, l.insertAll(records, result)
}

func (l *Loader) insertAll(records []*PhishingDataDO, result *UploadResult) error {
	log := l.logger()
	batchSize := l.BatchSize
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	result.Total = len(records)
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}

		err := l.Writer.InsertBatch(records[i:end])
		if err != nil {
			insertErr := &InsertError{Offset: i, Size: end - i, Err: err}
			log.Error("插入批次失败，已回滚该批次并停止上传",
				zap.Int("inserted", result.Inserted), zap.Int("total", result.Total), zap.Error(err))
			return insertErr
		}
		result.Inserted += end - i

		log.Info("上传进度",
			zap.Int("inserted", result.Inserted),
			zap.Int("total", result.Total),
			zap.String("percent", strconv.FormatFloat(float64(result.Inserted)/float64(result.Total)*100, 'f', 1, 64)+"%"))
	}

	log.Info("上传完成", zap.Int("inserted", result.Inserted))
	return nil
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
