package store

import (
	"fmt"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQL: Unknown database
const errUnknownDatabase = 1049

type UpdateDao interface {
	// 创建表格及索引，已存在时不做任何操作
	EnsureTable() error
	BatchWriter
}

// 在一个事务中插入一批数据，成功则提交，失败则回滚
type BatchWriter interface {
	InsertBatch(records []*PhishingDataDO) error
}

type QueryDao interface {
	CountRecords() (int64, error)
	CountByTypeClass() ([]*TypeClassCount, error)
}

type Dao interface {
	DB() *gorm.DB
	UpdateDao
	QueryDao
	Close() error
}

type daoImpl struct {
	db     *gorm.DB
	table  string
	logger *zap.Logger
}

var _ Dao = &daoImpl{}

// 连接数据库。若数据库不存在，则先不选择数据库连接并创建，再重新连接
func Open(config *Config, log *zap.Logger) (Dao, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("dao")
	if err := config.Complete(); err != nil {
		return nil, err
	}
	log.Debug("连接数据库", zap.Stringer("config", config))

	db, err := connect(config, true)
	if isUnknownDatabase(err) {
		log.Warn("数据库不存在，将连接服务器并创建", zap.String("database", config.Database))
		err = createDatabase(config)
		if err != nil {
			return nil, err
		}
		db, err = connect(config, true)
	}
	if err != nil {
		return nil, err
	}

	log.Info("连接数据库成功", zap.String("addr", config.Addr()), zap.String("database", config.Database))
	return &daoImpl{
		db:     db,
		table:  config.Table,
		logger: log,
	}, nil
}

// 打开Dao并执行f，无论f是否出错都会关闭连接
func WithDao(config *Config, log *zap.Logger, f func(dao Dao) error) (err error) {
	dao, err := Open(config, log)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := dao.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "关闭数据库连接出错")
		}
	}()

	return f(dao)
}

func connect(config *Config, withDatabase bool) (*gorm.DB, error) {
	database := ""
	if withDatabase {
		database = config.Database
	}

	db, err := gorm.Open(gormmysql.Open(config.DSN(withDatabase)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		closeDB(db)
		return nil, &ConnectionError{Addr: config.Addr(), Database: database, Err: err}
	}
	return db, nil
}

func createDatabase(config *Config) error {
	db, err := connect(config, false)
	if err != nil {
		return err
	}
	defer closeDB(db)

	err = db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci",
		config.Database)).Error
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("创建数据库%s出错", config.Database))
	}
	return nil
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func isUnknownDatabase(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errUnknownDatabase
}

func (d *daoImpl) EnsureTable() error {
	err := d.db.Table(d.table).
		Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci").
		AutoMigrate(&PhishingDataDO{})
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("创建表格%s时出现异常", d.table))
	}
	d.logger.Info("表格已就绪", zap.String("table", d.table))
	return nil
}

func (d *daoImpl) InsertBatch(records []*PhishingDataDO) error {
	if len(records) == 0 {
		return nil
	}

	tx := d.db.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "开启事务出错")
	}
	err := tx.Table(d.table).Create(records).Error
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			d.logger.Error("回滚事务出错", zap.Error(rbErr))
		}
		return errors.Wrap(err, "插入数据出错")
	}
	if err = tx.Commit().Error; err != nil {
		return errors.Wrap(err, "提交事务出错")
	}
	return nil
}

func (d *daoImpl) CountRecords() (int64, error) {
	var n int64
	err := d.db.Table(d.table).Count(&n).Error
	if err != nil {
		return 0, errors.Wrap(err, "查询记录数量出错")
	}
	return n, nil
}

func (d *daoImpl) CountByTypeClass() ([]*TypeClassCount, error) {
	result := make([]*TypeClassCount, 0, 4)
	err := d.db.Table(d.table).
		Select("phishing_type, phishing_class, COUNT(*) AS count").
		Group("phishing_type, phishing_class").
		Order("phishing_type, phishing_class").
		Scan(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "查询类别分布出错")
	}
	return result, nil
}

func (d *daoImpl) DB() *gorm.DB {
	return d.db
}

func (d *daoImpl) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	if err = sqlDB.Close(); err != nil {
		return err
	}
	d.logger.Info("数据库连接已关闭")
	return nil
}
