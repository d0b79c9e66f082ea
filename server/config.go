package server

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 运行配置，来自 .env 与环境变量
type Config struct {
	Addr           string        // 监听地址
	LogFile        string        // 日志文件路径
	WebDir         string        // 前端静态资源目录
	AvatarDir      string        // 角色素材根目录
	ReportInterval time.Duration // 在线规模上报周期
}

// LoadConfig 读取配置；.env 不存在时直接用环境变量与默认值
func LoadConfig() Config {
	_ = godotenv.Load()

	interval := 30 * time.Second
	if v := os.Getenv("REPORT_INTERVAL_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			interval = time.Duration(sec) * time.Second
		}
	}

	return Config{
		Addr:           envOr("ADDR", ":8080"),
		LogFile:        envOr("LOG_FILE", "presence.log"),
		WebDir:         envOr("WEB_DIR", "web"),
		AvatarDir:      envOr("AVATAR_DIR", "web/personagem"),
		ReportInterval: interval,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
