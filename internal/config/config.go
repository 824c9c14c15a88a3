package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DBPath       string
	UploadDir    string
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool
}

// Load reads configuration from environment variables, falling back to
// development defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "8585")
	v.SetDefault("DB_PATH", "./furhub.db")
	v.SetDefault("UPLOAD_DIR", "static/uploads")
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", false)
	v.AutomaticEnv()

	cfg := &Config{
		Port:         v.GetString("PORT"),
		DBPath:       v.GetString("DB_PATH"),
		UploadDir:    v.GetString("UPLOAD_DIR"),
		CookieDomain: v.GetString("COOKIE_DOMAIN"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
	}

	var err error
	if cfg.SessionKey, err = loadKey(v, "SESSION_KEY"); err != nil {
		return nil, err
	}
	if cfg.CSRFKey, err = loadKey(v, "CSRF_KEY"); err != nil {
		return nil, err
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable, falling back to default", "PORT", cfg.Port)
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment. An absent or malformed
// key gets replaced with a random one, which invalidates sessions on restart.
func loadKey(v *viper.Viper, name string) ([]byte, error) {
	encoded := v.GetString(name)
	if encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err == nil && len(decoded) >= 32 {
			return decoded, nil
		}
		slog.Warn("Key is invalid or shorter than 32 bytes, generating a random development key", "key", name)
	} else {
		slog.Warn("Key not set, generating a random development key. Set it in production!", "key", name)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", name, err)
	}
	return key, nil
}
