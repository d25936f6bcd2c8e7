package config

import (
	"os"
	"sync"

	"github.com/spf13/viper"
)

var (
	_config *viper.Viper
	once    sync.Once
)

// GetConfig 返回整个项目共用的配置，配置文件 config.yml 从 SECURITY_HOME 环境变量指向的
// 目录或者当前目录中读取，读不到配置文件时使用默认配置。
func GetConfig() *viper.Viper {
	once.Do(func() {
		v := viper.New()
		if home := os.Getenv("SECURITY_HOME"); home != "" {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName("config.yml")
		v.SetConfigType("yaml")

		v.SetDefault("security.keystorepath", "keys")
		v.SetDefault("security.readonly", false)
		v.SetDefault("security.metrics", "disabled")
		v.SetDefault("security.bufferlength", 1024)

		_ = v.ReadInConfig()
		_config = v
	})
	return _config
}
