package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yml"

type AppConfig struct {
	Port            int      `yaml:"port"`
	GinMode         string   `yaml:"gin_mode"`
	ReadTimeout     string   `yaml:"read_timeout"`
	WriteTimeout    string   `yaml:"write_timeout"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	CacheTTL string `yaml:"cache_ttl"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type NotificationsConfig struct {
	Driver  string `yaml:"driver"`
	AppName string `yaml:"app_name"`
}

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	From      string `yaml:"from"`
	TLSPolicy string `yaml:"tls_policy"`
}

type TwilioConfig struct {
	AccountSID       string `yaml:"account_sid"`
	AuthToken        string `yaml:"auth_token"`
	VerifyServiceSID string `yaml:"verify_service_sid"`
}

type ConfigFile struct {
	App           AppConfig           `yaml:"app"`
	Log           LogConfig           `yaml:"log"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	OTP           OTPConfig           `yaml:"otp"`
	Notifications NotificationsConfig `yaml:"notifications"`
	SMTP          SMTPConfig          `yaml:"smtp"`
	Twilio        TwilioConfig        `yaml:"twilio"`
}

type Config struct {
	Port            string
	GinMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	DBDriver        string
	DSN             string
	DBLogLevel      string
	RedisEnabled    bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	UserCacheTTL    time.Duration
	OTP_TTL         time.Duration
	OTP_Length      int
	NotifyDriver    string
	AppName         string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	SMTPTLSPolicy   string
	TwilioSID       string
	TwilioToken     string
	TwilioVerifySID string
}

// Defaults returns the file-level configuration used when no file is present
func Defaults() *ConfigFile {
	return &ConfigFile{
		App: AppConfig{
			Port:            5000,
			GinMode:         "release",
			ReadTimeout:     "10s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "10s",
		},
		Log:      LogConfig{Level: "info", Format: "json"},
		Database: DatabaseConfig{Driver: "postgres", LogLevel: "warn"},
		Redis:    RedisConfig{Addr: "localhost:6379", CacheTTL: "5m"},
		OTP:      OTPConfig{TTL: "5m", Length: 6},
		Notifications: NotificationsConfig{
			Driver:  "log",
			AppName: "Online Exam System",
		},
		SMTP: SMTPConfig{Port: 587, TLSPolicy: "mandatory"},
	}
}

// Load reads .env (when present), the YAML file at CONFIG_PATH or
// config/config.yml, and finally applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := env("CONFIG_PATH", defaultConfigPath)
	configFile, err := loadConfigFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || os.Getenv("CONFIG_PATH") != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		configFile = Defaults()
	}

	applyEnv(configFile)
	return FromFile(configFile)
}

// FromFile converts the file representation into the runtime Config
func FromFile(configFile *ConfigFile) (*Config, error) {
	var problems []string
	duration := func(name, value string) time.Duration {
		d, err := time.ParseDuration(value)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid %s %q: %v", name, value, err))
		}
		return d
	}

	cfg := &Config{
		Port:            strconv.Itoa(configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		ReadTimeout:     duration("app read timeout", configFile.App.ReadTimeout),
		WriteTimeout:    duration("app write timeout", configFile.App.WriteTimeout),
		ShutdownTimeout: duration("app shutdown timeout", configFile.App.ShutdownTimeout),
		CORSOrigins:     configFile.App.CORSOrigins,
		LogLevel:        configFile.Log.Level,
		LogFormat:       configFile.Log.Format,
		DBDriver:        configFile.Database.Driver,
		DSN:             configFile.Database.DSN,
		DBLogLevel:      configFile.Database.LogLevel,
		RedisEnabled:    configFile.Redis.Enabled,
		RedisAddr:       configFile.Redis.Addr,
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		UserCacheTTL:    duration("redis cache ttl", configFile.Redis.CacheTTL),
		OTP_TTL:         duration("OTP TTL", configFile.OTP.TTL),
		OTP_Length:      configFile.OTP.Length,
		NotifyDriver:    configFile.Notifications.Driver,
		AppName:         configFile.Notifications.AppName,
		SMTPHost:        configFile.SMTP.Host,
		SMTPPort:        configFile.SMTP.Port,
		SMTPUsername:    configFile.SMTP.Username,
		SMTPPassword:    configFile.SMTP.Password,
		SMTPFrom:        configFile.SMTP.From,
		SMTPTLSPolicy:   configFile.SMTP.TLSPolicy,
		TwilioSID:       configFile.Twilio.AccountSID,
		TwilioToken:     configFile.Twilio.AuthToken,
		TwilioVerifySID: configFile.Twilio.VerifyServiceSID,
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every inconsistent setting at once
func (c *Config) Validate() error {
	var problems []string

	if c.DSN == "" {
		problems = append(problems, "database dsn is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("unsupported database driver %q", c.DBDriver))
	}
	if c.OTP_Length < 4 || c.OTP_Length > 10 {
		problems = append(problems, fmt.Sprintf("otp length must be between 4 and 10, got %d", c.OTP_Length))
	}
	if c.OTP_TTL <= 0 {
		problems = append(problems, "otp ttl must be positive")
	}
	for _, origin := range c.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			problems = append(problems, fmt.Sprintf("cors origin %q must be \"*\" or start with http:// or https://", origin))
		}
	}
	if c.RedisEnabled && c.RedisAddr == "" {
		problems = append(problems, "redis addr is required when redis is enabled")
	}
	if c.RedisEnabled && c.UserCacheTTL <= 0 {
		problems = append(problems, "redis cache ttl must be positive when redis is enabled")
	}
	switch c.NotifyDriver {
	case "log":
	case "smtp":
		if c.SMTPHost == "" || c.SMTPFrom == "" {
			problems = append(problems, "smtp host and from are required for the smtp driver")
		}
	case "twilio":
		if c.TwilioSID == "" || c.TwilioToken == "" || c.TwilioVerifySID == "" {
			problems = append(problems, "twilio account sid, auth token and verify service sid are required for the twilio driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported notifications driver %q", c.NotifyDriver))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// applyEnv lets deployment secrets and addresses override the file
func applyEnv(f *ConfigFile) {
	if v := os.Getenv("APP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			f.App.Port = port
		}
	}
	f.App.GinMode = env("GIN_MODE", f.App.GinMode)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		f.App.CORSOrigins = strings.Split(v, ",")
	}
	f.Log.Level = env("LOG_LEVEL", f.Log.Level)
	f.Log.Format = env("LOG_FORMAT", f.Log.Format)
	f.Database.Driver = env("DATABASE_DRIVER", f.Database.Driver)
	f.Database.DSN = env("DATABASE_DSN", f.Database.DSN)
	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		f.Redis.Enabled = v == "true"
	}
	f.Redis.Addr = env("REDIS_ADDR", f.Redis.Addr)
	f.Redis.Password = env("REDIS_PASSWORD", f.Redis.Password)
	f.OTP.TTL = env("OTP_TTL", f.OTP.TTL)
	f.Notifications.Driver = env("NOTIFICATIONS_DRIVER", f.Notifications.Driver)
	f.SMTP.Host = env("SMTP_HOST", f.SMTP.Host)
	f.SMTP.Username = env("SMTP_USERNAME", f.SMTP.Username)
	f.SMTP.Password = env("SMTP_PASSWORD", f.SMTP.Password)
	f.SMTP.From = env("SMTP_FROM", f.SMTP.From)
	f.Twilio.AccountSID = env("TWILIO_ACCOUNT_SID", f.Twilio.AccountSID)
	f.Twilio.AuthToken = env("TWILIO_AUTH_TOKEN", f.Twilio.AuthToken)
	f.Twilio.VerifyServiceSID = env("TWILIO_VERIFY_SERVICE_SID", f.Twilio.VerifyServiceSID)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	config := Defaults()
	if err := yaml.Unmarshal(bytes, config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return config, nil
}
