package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Postgres DBConfig
	Redis    RedisConfig
	S3       S3Config
	Motion   MotionConfig
	Worker   WorkerConfig
	Logger   Logger
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type WorkerConfig struct {
	WorkerCount int
	MaxCPUUsage float64
	ScratchDir  string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr       string
	RedisPassword   string
	DB              int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     int
	TaskQueueKey    string
	UploadRateLimit int
	UploadRateTTL   int
}

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	VideoBucket   string
	AudioBucket   string
	MotionBucket  string
	MontageBucket string
	AvatarBucket  string
}

// MotionConfig points at the external motion generation service and bounds
// the callback-side re-hosting step.
type MotionConfig struct {
	APIBaseURL       string
	APIKey           string
	CallbackURL      string
	SubmitTimeoutSec int
	RehostTimeoutSec int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
