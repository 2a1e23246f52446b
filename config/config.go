package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"tattler-go/slogger"
)

var logger = slogger.New("config")

// Config holds all configuration for the application
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Redis  RedisConfig  `mapstructure:"redis"`
	OneBot OneBotConfig `mapstructure:"onebot"`
	Notice NoticeConfig `mapstructure:"notice"`
	Patrol PatrolConfig `mapstructure:"patrol"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"logLevel"`
	// 管理员QQ号列表, 同时也是无管理群时的告警私聊对象
	Admins []string `mapstructure:"admins"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type OneBotConfig struct {
	// websocket事件上报地址
	Server string `mapstructure:"server"`
	// HTTP API地址
	Api   string `mapstructure:"api"`
	Token string `mapstructure:"token"`
}

type NoticeConfig struct {
	// 管理群群号, 配置后优先于管理员私聊
	ManageGroup  int64 `mapstructure:"manageGroup"`
	BanNotice    bool  `mapstructure:"banNotice"`
	AdminNotice  bool  `mapstructure:"adminNotice"`
	MemberNotice bool  `mapstructure:"memberNotice"`
	// 抽查时拉取的历史消息条数, 0表示使用平台默认页大小
	HistoryLimit int `mapstructure:"historyLimit"`
}

type PatrolConfig struct {
	// 巡逻任务的默认cron表达式
	Spec string `mapstructure:"spec"`
}

// LoadConfig loads the configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set default configuration values
	setDefaults(v)

	// Set configuration file settings
	v.SetConfigType("toml")

	// If config path is provided, use it
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Otherwise, look for config in the default locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.tattler-go")
		v.AddConfigPath("/etc/tattler-go")
	}

	// Try to read the config file
	if err := v.ReadInConfig(); err != nil {
		// If the config file wasn't found, initialize and create one
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, creating default configuration")
			return createDefaultConfig(v)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse the config into our struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.admins", []string{})

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// OneBot defaults match a local go-cqhttp style deployment
	v.SetDefault("onebot.server", "ws://localhost:8080")
	v.SetDefault("onebot.api", "http://localhost:5700")

	v.SetDefault("notice.banNotice", true)
	v.SetDefault("notice.adminNotice", true)
	v.SetDefault("notice.memberNotice", true)
	v.SetDefault("notice.historyLimit", 20)

	// every hour by default
	v.SetDefault("patrol.spec", "0 * * * *")
}

// createDefaultConfig creates a default configuration file if none exists
func createDefaultConfig(v *viper.Viper) (*Config, error) {
	configDir := os.ExpandEnv("$HOME/.tattler-go")
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	// Create default config file
	configFile := filepath.Join(configDir, "config.toml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return nil, fmt.Errorf("error creating default config file: %w", err)
	}

	logger.Info("Created default config file", "path", configFile)

	// Parse the config into our struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}
