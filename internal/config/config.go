package config

import (
	"github.com/blues/cfd/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Api    ApiConfig    `mapstructure:"api"`
	Chain  ChainConfig  `mapstructure:"chain"`
	Wallet WalletConfig `mapstructure:"wallet"`
	Task   TaskConfig   `mapstructure:"task"`
	Log    LogConfig    `mapstructure:"log"`
}

// ApiConfig 后端服务配置
type ApiConfig struct {
	BaseURL string `mapstructure:"base_url"` // 后端服务地址
	Timeout int    `mapstructure:"timeout"`  // HTTP客户端超时（秒），0表示不限制
}

// ChainConfig 链配置
type ChainConfig struct {
	Network string `mapstructure:"network"` // 链网络标识
	Program string `mapstructure:"program"` // 目标Leo程序名称
	Fee     int64  `mapstructure:"fee"`     // 执行费用上限（microcredit）
}

// WalletConfig 钱包桥接配置
type WalletConfig struct {
	Endpoint string `mapstructure:"endpoint"` // 本地钱包守护进程地址
	Address  string `mapstructure:"address"`  // 当前连接的钱包地址
}

// TaskConfig 后台任务配置
type TaskConfig struct {
	Interval  int      `mapstructure:"interval"`  // 秒
	Addresses []string `mapstructure:"addresses"` // 后台同步跟踪的钱包地址
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cfd")

	// 设置默认值
	viper.SetDefault("api.base_url", "http://0.0.0.0:4000")
	viper.SetDefault("api.timeout", 15)
	viper.SetDefault("chain.network", "testnet3")
	viper.SetDefault("chain.program", "project_crowdfunding7.aleo")
	viper.SetDefault("chain.fee", 350000)
	viper.SetDefault("wallet.endpoint", "http://localhost:5310")
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
