package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadEnvFile 从 path 读取 .env 风格文件（KEY=VALUE），并 set 到当前进程环境变量。
// 空行与 # 开头行忽略；文件不存在不报错。override 为 false 时不覆盖已存在的环境变量。
func LoadEnvFile(path string, override bool) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		}
		if override || os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
	return sc.Err()
}

// Load 在默认值之上叠加 path 指向的 YAML；path 为空则只用默认值。之后应用环境变量覆盖并校验。
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config unmarshal: %w", err)
		}
	}
	applyEnvOverrides(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 检查端口与 backlog 范围；Host 为空时回填 "::"。
func (c *Config) Validate() error {
	if c.Listen.Host == "" {
		c.Listen.Host = "::"
	}
	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		return fmt.Errorf("config: listen.port %d out of range", c.Listen.Port)
	}
	if c.Listen.Backlog <= 0 {
		return fmt.Errorf("config: listen.backlog must be positive, got %d", c.Listen.Backlog)
	}
	if c.HTTP.ReadHeaderTimeoutSeconds < 0 || c.HTTP.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("config: http timeouts must not be negative")
	}
	return nil
}

// applyEnvOverrides 用 IPINFO_ 前缀环境变量覆盖常用项；无法解析的数值忽略。
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("IPINFO_LISTEN_HOST"); v != "" {
		c.Listen.Host = v
	}
	if v := os.Getenv("IPINFO_LISTEN_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Listen.Port = n
		}
	}
	if v := os.Getenv("IPINFO_BACKLOG"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Listen.Backlog = n
		}
	}
	if v := os.Getenv("IPINFO_READ_HEADER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HTTP.ReadHeaderTimeoutSeconds = n
		}
	}
	if v := os.Getenv("IPINFO_ACCESS_LOG"); v != "" {
		c.HTTP.AccessLog = strings.ToLower(v) == "true" || v == "1"
	}
}
