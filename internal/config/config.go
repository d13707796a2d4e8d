package config

import (
	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. "127.0.0.1:8600")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, "console" logs to stdout
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Metrics configuration
 * @property {string} pushgateway - Pushgateway address for metrics, empty disables pushing
 */
type MetricsConfig struct {
	Pushgateway string `mapstructure:"pushgateway"`
}

/**
 * Secret store configuration
 * @property {string} base_url - Platform secret store endpoint
 * @property {string} lpuser_secret_id - Secret reference holding the Launchpad credentials
 */
type SecretsConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	LpuserSecretID string `mapstructure:"lpuser_secret_id"`
}

/**
 * Agent configuration
 * @property {string} ingress_url - Externally reachable URL supplied by the ingress layer
 * @property {string} binding - Network binding name used when no ingress URL is present
 */
type AgentConfig struct {
	IngressURL string `mapstructure:"ingress_url"`
	Binding    string `mapstructure:"binding"`
}

type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Secrets SecretsConfig `mapstructure:"secrets"`
	Agent   AgentConfig   `mapstructure:"agent"`
}

/**
 * Load application configuration from YAML file
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/staticreports-agent")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Server.Address == "" {
		cfg.Server.Address = "127.0.0.1:8600"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Agent.Binding == "" {
		cfg.Agent.Binding = "juju-info"
	}
	return cfg
}

// ReloadConfig 重新读取配置文件，供API触发
func ReloadConfig() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	Config = *collectConfig(cfg)
	return nil
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
