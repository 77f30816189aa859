package store

import (
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"time"
)

type PhishingDataDO struct {
	ID            uint      `gorm:"primarykey"`
	PhishingData  string    `gorm:"type:LONGTEXT;not null"`
	PhishingType  string    `gorm:"type:ENUM('mail','url');not null;index:idx_type;index:idx_type_class,priority:1"`
	PhishingClass int16     `gorm:"type:SMALLINT;not null;index:idx_class;index:idx_type_class,priority:2"`
	CreatedAt     time.Time `gorm:"type:TIMESTAMP;default:CURRENT_TIMESTAMP"`
}

func (PhishingDataDO) TableName() string {
	return DefaultTable
}

func NewPhishingDataDO(record *core.Record) *PhishingDataDO {
	return &PhishingDataDO{
		PhishingData:  record.Data,
		PhishingType:  record.SourceType.DBValue(),
		PhishingClass: int16(record.Label),
	}
}
