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
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"os"
	"strings"
)

const (
	FlagConfig  = "config"
	FlagVerbose = "verbose"
)

const (
	configName = ".phishing-dataset"
	envPrefix  = "PHISHING"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "phishing-dataset",
	Short: "合并钓鱼邮件与钓鱼URL数据集，并上传到MySQL",
	Long: "merge命令读取邮件数据集(Email Text, Email Type)与URL数据集(url, status)，统一标签后合并为一个CSV文件。\n" +
		"upload命令将合并后的CSV文件分批写入MySQL，每个批次单独提交。",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, FlagConfig, "",
		"配置文件路径，默认为$HOME/"+configName+".yaml")
	rootCmd.PersistentFlags().BoolP(FlagVerbose, "v", false,
		"输出调试日志")
	_ = viper.BindPFlag(FlagVerbose, rootCmd.PersistentFlags().Lookup(FlagVerbose))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
	}

	// PHISHING_MYSQL_HOST对应mysql-host
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (*zap.Logger, error) {
	if viper.GetBool(FlagVerbose) {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
