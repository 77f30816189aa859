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
	"github.com/packagewjx/phishing-dataset/internal/pipeline"
	"github.com/packagewjx/phishing-dataset/internal/sink"
	"github.com/packagewjx/phishing-dataset/internal/store"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	FlagEmailFile  = "email"
	FlagURLFile    = "url"
	FlagOutputFile = "output"
	FlagUpload     = "upload"
)

const DefaultOutputFile = "decphi_dataset.csv"

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "合并邮件与URL数据集，输出统一的CSV文件",
	Long: "邮件数据集的Email Type忽略大小写后等于\"phishing email\"时为钓鱼(1)，否则为正常(0)；\n" +
		"URL数据集的status为1时为钓鱼，其余值(包括无法解析的值)为正常。邮件记录在前，URL记录在后。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
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

		p := pipeline.New(pipeline.DefaultSources(viper.GetString(FlagEmailFile), viper.GetString(FlagURLFile)), logger)
		ds, _, err := p.Run()
		if err != nil {
			logger.Error("合并数据集失败", zap.Error(err))
			return err
		}
		logDistribution(logger, ds)

		output := viper.GetString(FlagOutputFile)
		n, err := sink.WriteFile(output, ds)
		if err != nil {
			logger.Error("写出数据集失败", zap.Error(err))
			return err
		}
		logger.Info("数据集已创建", zap.String("path", output), zap.Int("records", ds.Len()), zap.Uint64("bytes", n))

		if !viper.GetBool(FlagUpload) {
			return nil
		}
		config := mysqlConfig()
		return store.WithDao(config, logger, func(dao store.Dao) error {
			if err := dao.EnsureTable(); err != nil {
				return err
			}
			_, err := store.NewLoader(dao, config.BatchSize, logger).UploadDataset(ds)
			return err
		})
	},
}

// 合并后各类型的类别分布，用于检查标签映射是否正确
func logDistribution(logger *zap.Logger, ds *core.Dataset) {
	for _, typ := range []core.SourceType{core.Mail, core.URL} {
		logger.Info("类别分布",
			zap.String("type", typ.String()),
			zap.Int("class_0", ds.CountBy(typ, core.ClassBenign)),
			zap.Int("class_1", ds.CountBy(typ, core.ClassPhishing)))
	}
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().String(FlagEmailFile, "Phishing_Email.csv",
		"邮件数据集，需包含Email Text与Email Type列")
	mergeCmd.Flags().String(FlagURLFile, "new_data_urls.csv",
		"URL数据集，需包含url与status列")
	mergeCmd.Flags().StringP(FlagOutputFile, "o", DefaultOutputFile,
		"输出文件，已存在时将被覆盖")
	mergeCmd.Flags().Bool(FlagUpload, false,
		"若设置，则合并后直接上传到MySQL，数据库参数与upload命令相同")
	addMysqlFlags(mergeCmd)

	for _, name := range []string{FlagEmailFile, FlagURLFile, FlagOutputFile, FlagUpload} {
		_ = viper.BindPFlag(name, mergeCmd.Flags().Lookup(name))
	}
}
