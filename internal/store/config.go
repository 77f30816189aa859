package store

import (
	"encoding/json"
	"fmt"
	"github.com/go-sql-driver/mysql"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"
)

const (
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 3306
	DefaultTable     = "phishing_data"
	DefaultBatchSize = 1000
)

var identifierPattern = regexp.MustCompile("^[A-Za-z0-9_$]{1,64}$")

type Config struct {
	Host      string // 主机名，也可以是host:port格式，此时忽略Port
	Port      uint16
	User      string
	Password  string
	Database  string
	Table     string
	BatchSize int // 每个批次插入并提交的行数
}

func (c Config) String() string {
	copied := c
	if copied.Password != "" {
		copied.Password = "******"
	}
	marshal, _ := json.Marshal(copied)
	return string(marshal)
}

// 填充默认值并检查配置
func (c *Config) Complete() error {
	if c.Host == "" {
		c.Host = os.Getenv("MYSQL_SERVICE_HOST")
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		if p, err := strconv.ParseUint(os.Getenv("MYSQL_SERVICE_PORT"), 10, 16); err == nil && p != 0 {
			c.Port = uint16(p)
		} else {
			c.Port = DefaultPort
		}
	}
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}

	if c.User == "" {
		return fmt.Errorf("数据库用户名不能为空")
	}
	if !identifierPattern.MatchString(c.Database) {
		return fmt.Errorf("数据库名称%q不合法", c.Database)
	}
	if !identifierPattern.MatchString(c.Table) {
		return fmt.Errorf("表名称%q不合法", c.Table)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("批次大小至少为1，现在为%d", c.BatchSize)
	}
	return nil
}

func (c *Config) Addr() string {
	if _, _, err := net.SplitHostPort(c.Host); err == nil {
		return c.Host
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// withDatabase为false时不选择数据库，用于创建数据库
func (c *Config) DSN(withDatabase bool) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Addr()
	if withDatabase {
		cfg.DBName = c.Database
	}
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
