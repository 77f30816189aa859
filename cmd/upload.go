/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/packagewjx/phishing-dataset/internal/datasource"
	"github.com/packagewjx/phishing-dataset/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"os"
)

const (
	FlagMysqlHost     = "mysql-host"
	FlagMysqlPort     = "mysql-port"
	FlagMysqlUser     = "mysql-user"
	FlagMysqlPassword = "mysql-password"
	FlagDatabase      = "database"
	FlagTable         = "table"
	FlagBatchSize     = "batch-size"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload csvFile",
	Short: "将合并后的CSV文件分批上传到MySQL",
	Long: "数据库或表格不存在时会自动创建。列名会被规范化(去除空白、转小写、空格替换为下划线)，\n" +
		"必须包含phishing_data、phishing_type与phishing_class。每个批次单独提交，某一批次失败时回滚该批次并停止上传，\n" +
		"此前已提交的批次会保留。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("参数错误")
		}
		_, err := os.Stat(args[0])
		if os.IsNotExist(err) {
			return fmt.Errorf("输入文件%s不存在", args[0])
		}
		return bindMysqlFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return errors.Wrap(err, "创建日志出错")
		}
		defer func() {
			_ = logger.Sync()
		}()

		logger.Info("读取CSV文件中", zap.String("path", args[0]))
		table, err := datasource.OpenTable(args[0])
		if err != nil {
			logger.Error("读取CSV文件失败", zap.Error(err))
			return err
		}
		logger.Info("读取CSV文件完成", zap.Int("rows", len(table.Rows)))

		config := mysqlConfig()
		err = store.WithDao(config, logger, func(dao store.Dao) error {
			if err := dao.EnsureTable(); err != nil {
				return err
			}

			result, err := store.NewLoader(dao, config.BatchSize, logger).Upload(table)
			if err != nil {
				return err
			}

			n, err := dao.CountRecords()
			if err != nil {
				return err
			}
			logger.Info("上传完成",
				zap.Int("inserted", result.Inserted),
				zap.Int("dropped_missing", result.DroppedMissing),
				zap.Int("dropped_invalid", result.DroppedInvalid),
				zap.Int64("table_rows", n))

			counts, err := dao.CountByTypeClass()
			if err != nil {
				return err
			}
			for _, c := range counts {
				logger.Debug("类别分布", zap.String("type", c.PhishingType),
					zap.Int("class", c.PhishingClass), zap.Int64("count", c.Count))
			}
			return nil
		})
		if err != nil {
			logger.Error("上传失败", zap.Error(err))
		}
		return err
	},
}

func mysqlConfig() *store.Config {
	return &store.Config{
		Host:      viper.GetString(FlagMysqlHost),
		Port:      uint16(viper.GetUint(FlagMysqlPort)),
		User:      viper.GetString(FlagMysqlUser),
		Password:  viper.GetString(FlagMysqlPassword),
		Database:  viper.GetString(FlagDatabase),
		Table:     viper.GetString(FlagTable),
		BatchSize: viper.GetInt(FlagBatchSize),
	}
}

// merge与upload共用数据库参数
func addMysqlFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagMysqlHost, "",
		"Mysql服务器主机，可以为host:port格式。若为空，则读取环境变量MYSQL_SERVICE_HOST与MYSQL_SERVICE_PORT取得")
	cmd.Flags().Uint16(FlagMysqlPort, 0,
		"Mysql服务器端口，默认为3306")
	cmd.Flags().String(FlagMysqlUser, "root",
		"Mysql用户名")
	cmd.Flags().String(FlagMysqlPassword, "",
		"Mysql密码")
	cmd.Flags().String(FlagDatabase, "phishing",
		"数据库名称，不存在时自动创建")
	cmd.Flags().String(FlagTable, store.DefaultTable,
		"表名称，不存在时自动创建")
	cmd.Flags().Int(FlagBatchSize, store.DefaultBatchSize,
		"每个批次插入的行数")
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	addMysqlFlags(uploadCmd)
}

// 两个命令都定义了数据库参数，执行时才绑定当前命令的flag，避免互相覆盖
func bindMysqlFlags(cmd *cobra.Command) error {
	for _, name := range []string{FlagMysqlHost, FlagMysqlPort, FlagMysqlUser, FlagMysqlPassword,
		FlagDatabase, FlagTable, FlagBatchSize} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return errors.Wrap(err, fmt.Sprintf("绑定参数%s出错", name))
		}
	}
	return nil
}
