package store

import (
	"fmt"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"os"
	"testing"
	"time"
)

// 需要可连接的MySQL，通过PHISHING_TEST_MYSQL_HOST(host:port)等环境变量指定，否则跳过
func testConfig(t *testing.T) *Config {
	host := os.Getenv("PHISHING_TEST_MYSQL_HOST")
	if host == "" {
		t.Skip("没有设置PHISHING_TEST_MYSQL_HOST，跳过数据库测试")
	}
	user := os.Getenv("PHISHING_TEST_MYSQL_USER")
	if user == "" {
		user = "root"
	}
	config := &Config{
		Host:      host,
		User:      user,
		Password:  os.Getenv("PHISHING_TEST_MYSQL_PASSWORD"),
		Database:  fmt.Sprintf("phishing_test_%d", time.Now().UnixNano()),
		BatchSize: 10,
	}
	t.Cleanup(func() {
		db, err := connect(config, false)
		if err != nil {
			return
		}
		defer closeDB(db)
		db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", config.Database))
	})
	return config
}

func testRecords(n int, typ core.SourceType) []*PhishingDataDO {
	arr := make([]*PhishingDataDO, n)
	for i := 0; i < n; i++ {
		arr[i] = NewPhishingDataDO(&core.Record{
			Data:       fmt.Sprintf("test-%d", i),
			SourceType: typ,
			Label:      i % 2,
		})
	}
	return arr
}

func TestOpen_CreatesDatabase(t *testing.T) {
	config := testConfig(t)
	logger := zaptest.NewLogger(t)

	// 数据库尚不存在，第一次打开时创建
	dao, err := Open(config, logger)
	require.NoError(t, err)
	require.NoError(t, dao.EnsureTable())
	require.NoError(t, dao.Close())

	// 再次打开与建表均不应出错
	dao, err = Open(config, logger)
	require.NoError(t, err)
	defer func() {
		_ = dao.Close()
	}()
	assert.NoError(t, dao.EnsureTable())
	assert.NoError(t, dao.EnsureTable())

	var indexCount int64
	dao.DB().Raw("SELECT COUNT(DISTINCT index_name) FROM information_schema.statistics "+
		"WHERE table_schema = ? AND table_name = ?", config.Database, config.Table).Scan(&indexCount)
	// PRIMARY, idx_type, idx_class, idx_type_class
	assert.Equal(t, int64(4), indexCount)
}

func TestDaoImpl_InsertBatch(t *testing.T) {
	err := WithDao(testConfig(t), zaptest.NewLogger(t), func(dao Dao) error {
		require.NoError(t, dao.EnsureTable())

		require.NoError(t, dao.InsertBatch(testRecords(10, core.Mail)))
		require.NoError(t, dao.InsertBatch(testRecords(10, core.URL)))

		// ENUM不接受的值会使整个批次失败并回滚
		bad := testRecords(10, core.URL)
		bad[9].PhishingType = "sms"
		assert.Error(t, dao.InsertBatch(bad))

		n, err := dao.CountRecords()
		require.NoError(t, err)
		assert.Equal(t, int64(20), n)

		counts, err := dao.CountByTypeClass()
		require.NoError(t, err)
		require.Equal(t, 4, len(counts))
		assert.Equal(t, "mail", counts[0].PhishingType)
		assert.Equal(t, 0, counts[0].PhishingClass)
		assert.Equal(t, int64(5), counts[0].Count)
		return nil
	})
	assert.NoError(t, err)
}

func TestLoader_UploadWithDatabase(t *testing.T) {
	config := testConfig(t)
	err := WithDao(config, zaptest.NewLogger(t), func(dao Dao) error {
		require.NoError(t, dao.EnsureTable())

		table := uploadTable(25)
		result, err := NewLoader(dao, config.BatchSize, zaptest.NewLogger(t)).Upload(table)
		require.NoError(t, err)
		assert.Equal(t, 25, result.Inserted)

		n, err := dao.CountRecords()
		require.NoError(t, err)
		assert.Equal(t, int64(25), n)
		return nil
	})
	assert.NoError(t, err)
}

func TestWithDao_ClosesOnError(t *testing.T) {
	var opened Dao
	err := WithDao(testConfig(t), nil, func(dao Dao) error {
		opened = dao
		return fmt.Errorf("模拟错误")
	})
	assert.EqualError(t, err, "模拟错误")

	sqlDB, _ := opened.DB().DB()
	assert.Error(t, sqlDB.Ping())
}

func TestOpen_ConnectionError(t *testing.T) {
	config := testConfig(t)
	config.Password = "absolutelyWrongPassword" + config.Password
	_, err := Open(config, nil)
	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
}
