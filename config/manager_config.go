package config

import (
	"fmt"
	"net"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/spf13/viper"
)

const (
	DefaultRequestHost   = ":60001"
	DefaultTeardownHost  = ":60002"
	DefaultEngineSocket  = "unix:///var/run/docker.sock"
	DefaultEngineTimeout = 10 * time.Second
	DefaultPortMin       = 50000
	DefaultPortMax       = 60000

	DefaultReconcileInterval = 30 * time.Second
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	FilePath string `mapstructure:"file_path"`
}

// ManagerConfig describes this manager and its two request endpoints.
type ManagerConfig struct {
	Address         string        `mapstructure:"address"`
	RequestHost     string        `mapstructure:"request_host"`
	TeardownHost    string        `mapstructure:"teardown_host"`
	EngineSocket    string        `mapstructure:"engine_socket"`
	EngineTimeout   time.Duration `mapstructure:"engine_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	MaxRequestSize  int64         `mapstructure:"max_request_size"`
	LeaveOnShutdown bool          `mapstructure:"leave_on_shutdown"`

	// ReconcileInterval is how often the tracker is compared with the
	// engine. Zero disables the check.
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
}

// RemoteConfig is a managed node reachable over TCP, optionally with mutual TLS.
type RemoteConfig struct {
	Address   string `mapstructure:"address"`
	Port      int    `mapstructure:"port"`
	TLSVerify bool   `mapstructure:"tls_verify"`
	CertsPath string `mapstructure:"certs_path"`
	CACert    string `mapstructure:"tls_ca_cert"`
	Cert      string `mapstructure:"tls_cert"`
	Key       string `mapstructure:"tls_key"`
}

func (r RemoteConfig) Endpoint() string {
	return "tcp://" + net.JoinHostPort(r.Address, strconv.Itoa(r.Port))
}

// TLSFiles returns the CA, client cert, and client key paths.
func (r RemoteConfig) TLSFiles() (ca, cert, key string) {
	return filepath.Join(r.CertsPath, r.CACert),
		filepath.Join(r.CertsPath, r.Cert),
		filepath.Join(r.CertsPath, r.Key)
}

type PlacementConfig struct {
	PortMin int `mapstructure:"port_min"`
	PortMax int `mapstructure:"port_max"`
}

type AuditConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type ManageConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Manager   ManagerConfig   `mapstructure:"manager"`
	Remotes   []RemoteConfig  `mapstructure:"remotes"`
	Placement PlacementConfig `mapstructure:"placement"`
	Audit     AuditConfig     `mapstructure:"audit"`
	MongoDB   MongoDBConfig   `mapstructure:"mongodb"`
	Key       KeyConfig       `mapstructure:"key"`
}

type MongoDBConfig struct {
	Database string      `mapstructure:"database"`
	CAPem    SecretValue `mapstructure:"ca_pem"`
	User     string      `mapstructure:"user"`
	Password SecretValue `mapstructure:"password"`
	Port     string      `mapstructure:"port"`
	Host     string      `mapstructure:"host"`
}

func (c MongoDBConfig) URI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s", c.User, c.Password.Value(), c.Host, c.Port)
}

type KeyConfig struct {
	JWTPublicKeyPem SecretValue `mapstructure:"jwt_public_key_pem"`
}

func InitManagerConfig(configName string, configPath string) (ManageConfig, error) {
	var cfg ManageConfig
	v := viper.New()
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "manager_config"
	}
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(strings.TrimSuffix(configName, ".toml"))
	v.SetConfigType("toml")
	v.SetEnvPrefix("EDGEAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	err := v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("%w: read config %s: %v", domain.ErrConfiguration, configName, err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("%w: decode config %s: %v", domain.ErrConfiguration, configName, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("manager.request_host", DefaultRequestHost)
	v.SetDefault("manager.teardown_host", DefaultTeardownHost)
	v.SetDefault("manager.engine_socket", DefaultEngineSocket)
	v.SetDefault("manager.engine_timeout", DefaultEngineTimeout)
	v.SetDefault("manager.reconcile_interval", DefaultReconcileInterval)
	v.SetDefault("placement.port_min", DefaultPortMin)
	v.SetDefault("placement.port_max", DefaultPortMax)
}

// Validate rejects configurations the manager cannot start with.
func (c ManageConfig) Validate() error {
	if c.Manager.Address == "" {
		return fmt.Errorf("%w: manager.address is required", domain.ErrConfiguration)
	}
	if c.Placement.PortMin <= 0 || c.Placement.PortMax > 65536 || c.Placement.PortMin >= c.Placement.PortMax {
		return fmt.Errorf("%w: placement port range [%d, %d) is invalid", domain.ErrConfiguration, c.Placement.PortMin, c.Placement.PortMax)
	}
	seen := make(map[string]struct{}, len(c.Remotes))
	for i, remote := range c.Remotes {
		if remote.Address == "" {
			return fmt.Errorf("%w: remotes[%d].address is required", domain.ErrConfiguration, i)
		}
		if _, dup := seen[remote.Address]; dup {
			return fmt.Errorf("%w: remote %s is listed twice", domain.ErrConfiguration, remote.Address)
		}
		seen[remote.Address] = struct{}{}
		if remote.Port <= 0 || remote.Port > 65535 {
			return fmt.Errorf("%w: remote %s has invalid port %d", domain.ErrConfiguration, remote.Address, remote.Port)
		}
		if remote.TLSVerify && (remote.CACert == "" || remote.Cert == "" || remote.Key == "") {
			return fmt.Errorf("%w: remote %s enables tls_verify without tls_ca_cert, tls_cert and tls_key", domain.ErrConfiguration, remote.Address)
		}
	}
	return nil
}

// GetAbsPath joins paths onto the module root directory.
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
