package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnv layers REMINDER_* environment variables over the loaded config.
// Unset variables leave the file/default value alone.
func applyEnv(cfg *Config) {
	if v := getEnvInt("REMINDER_PORT"); v > 0 {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REMINDER_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("REMINDER_STORAGE"); v != "" {
		cfg.Data.Storage = v
	}
	if v := getEnvInt("REMINDER_TICK_SECONDS"); v > 0 {
		cfg.Engine.TickSeconds = v
	}
	if v := getEnvInt("REMINDER_DEFAULT_INTERVAL_MINUTES"); v > 0 {
		cfg.Engine.Defaults.IntervalMinutes = v
	}
	if v := getEnvInt("REMINDER_DEFAULT_MAX_STEPS"); v > 0 {
		cfg.Engine.Defaults.MaxSteps = v
	}
	if v, ok := getEnvBool("REMINDER_DESKTOP_NOTIFY"); ok {
		cfg.Notify.Desktop = v
	}
	if v, ok := getEnvBool("REMINDER_SPEECH"); ok {
		cfg.Notify.Speech.Enabled = v
	}
	if v := os.Getenv("REMINDER_SPEECH_COMMAND"); v != "" {
		cfg.Notify.Speech.Command = v
	}
	if v := os.Getenv("VAPID_PUBLIC"); v != "" {
		cfg.Push.VAPIDPublic = v
	}
	if v := os.Getenv("VAPID_PRIVATE"); v != "" {
		cfg.Push.VAPIDPrivate = v
	}
	if v := os.Getenv("VAPID_CONTACT"); v != "" {
		cfg.Push.Contact = v
	}
	if v, ok := getEnvBool("REMINDER_DIGEST"); ok {
		cfg.Digest.Enabled = v
	}
	if v := os.Getenv("REMINDER_DIGEST_SCHEDULE"); v != "" {
		cfg.Digest.Schedule = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	default:
		return false, false
	}
}
