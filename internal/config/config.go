package config

import (
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Config *ServerConfig

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string
	// Port is the port the server should run on.
	Port int
	// DataDir holds one JSON file per collection.
	DataDir string
	// UploadDir holds uploaded document files.
	UploadDir string
	// MaxUploadBytes caps the size of a single uploaded document.
	MaxUploadBytes int64
	// AdminKey, when set, must be sent as x-admin-key to mutate course videos.
	AdminKey string
	// RedisAddr enables cross-process chat delivery over Redis pub/sub. Chat stays in-process
	// when empty.
	RedisAddr    string
	RedisChannel string
	// CourseCompletionAward is the number of credits granted per completed course.
	CourseCompletionAward int
	// DefaultGuestID identifies callers that do not send an x-guest-id header.
	DefaultGuestID string
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:        []string{"http://localhost:5173", "http://localhost:3000"},
		Port:                  5000,
		DataDir:               "data",
		UploadDir:             "uploads",
		MaxUploadBytes:        20 << 20,
		RedisChannel:          "chat",
		CourseCompletionAward: 50,
		DefaultGuestID:        "guest",
	}
}

// Load reads an optional .env file and then the process environment on top of the defaults.
func Load() *ServerConfig {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			glog.Warningf("failed to load %s: %v", envFile, err)
		}
	}

	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("port", def.Port)
	v.SetDefault("allowed_origins", strings.Join(def.AllowedOrigins, ","))
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("upload_dir", def.UploadDir)
	v.SetDefault("max_upload_bytes", def.MaxUploadBytes)
	v.SetDefault("admin_key", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_channel", def.RedisChannel)
	v.AutomaticEnv()

	return &ServerConfig{
		AllowedOrigins:        splitList(v.GetString("allowed_origins")),
		Port:                  v.GetInt("port"),
		DataDir:               v.GetString("data_dir"),
		UploadDir:             v.GetString("upload_dir"),
		MaxUploadBytes:        v.GetInt64("max_upload_bytes"),
		AdminKey:              v.GetString("admin_key"),
		RedisAddr:             v.GetString("redis_addr"),
		RedisChannel:          v.GetString("redis_channel"),
		CourseCompletionAward: def.CourseCompletionAward,
		DefaultGuestID:        def.DefaultGuestID,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	Config = DefaultConfig()
}
