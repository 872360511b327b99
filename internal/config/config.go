/* .env 및 환경 변수 기반 데모 설정 */

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultSaves    = 1
	defaultInterval = 10 * time.Millisecond
)

type Config struct {
	// RECORD_ATTRIBUTES="name=My First Model,my_number=89"
	Attributes map[string]string
	// Save() 호출 횟수
	Saves int
	// Save() 사이 대기 시간
	Interval time.Duration
}

// .env 파일이 있으면 먼저 읽고, 없으면 환경 변수만 사용
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config.Load(): Warning: failed to read .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		Attributes: parseAttributes(getenv("RECORD_ATTRIBUTES")),
		Saves:      defaultSaves,
		Interval:   defaultInterval,
	}

	if raw := getenv("RECORD_SAVES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			log.Printf("Warning: invalid RECORD_SAVES %q. Using default %d.", raw, defaultSaves)
		} else {
			cfg.Saves = n
		}
	}

	if raw := getenv("RECORD_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			log.Printf("Warning: invalid RECORD_INTERVAL %q. Using default %s.", raw, defaultInterval)
		} else {
			cfg.Interval = d
		}
	}
	return cfg
}

func parseAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		attrs[key] = strings.TrimSpace(value)
	}
	return attrs
}
