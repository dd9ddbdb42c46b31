// Package config 提供统一配置模型与加载（YAML + env override）。
// 不提供配置文件时使用默认值：[::]:80、backlog 1024。
package config

import "time"

const (
	DefaultPort                     = 80
	DefaultBacklog                  = 1024
	DefaultReadHeaderTimeoutSeconds = 10
	DefaultShutdownTimeoutSeconds   = 5
)

// Config 根配置；常用项由 IPINFO_ 前缀环境变量覆盖（见 Load）。
type Config struct {
	Listen ListenConfig `yaml:"listen"`
	HTTP   HTTPConfig   `yaml:"http"`
}

// ListenConfig 双栈监听参数。Host 为空表示 IPv6 通配地址 "::"。
type ListenConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Backlog int    `yaml:"backlog"`
}

// HTTPConfig HTTP 服务超时。
type HTTPConfig struct {
	ReadHeaderTimeoutSeconds int  `yaml:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds   int  `yaml:"shutdown_timeout_seconds"`
	AccessLog                bool `yaml:"access_log"`
}

// Default 返回与固定配置等价的默认值。
func Default() *Config {
	return &Config{
		Listen: ListenConfig{
			Host:    "::",
			Port:    DefaultPort,
			Backlog: DefaultBacklog,
		},
		HTTP: HTTPConfig{
			ReadHeaderTimeoutSeconds: DefaultReadHeaderTimeoutSeconds,
			ShutdownTimeoutSeconds:   DefaultShutdownTimeoutSeconds,
			AccessLog:                true,
		},
	}
}

func (c HTTPConfig) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.ReadHeaderTimeoutSeconds) * time.Second
}

func (c HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
