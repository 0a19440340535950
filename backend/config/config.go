package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

func (h HTTP) Addr() string { return fmt.Sprintf("%s:%d", h.Host, h.Port) }

type DB struct {
	Driver string // sqlite | mysql
	Path   string // sqlite file or DSN
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Session struct {
	Cookie      string
	FlashCookie string
}

type Upload struct {
	Dir      string
	MaxBytes int64
}

type Admin struct {
	Name     string
	Email    string
	Password string
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	HTTP    HTTP
	DB      DB
	Redis   Redis
	Session Session
	Upload  Upload
	Admin   Admin
	Log     Log
	JWT     struct {
		Secret string
		Issuer string
		ExpMin int
	}
	Auth struct {
		AllowRoleField bool
	}

	v *viper.Viper
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix("JEWEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("backend.http.host", "0.0.0.0")
	v.SetDefault("backend.http.port", 5000)
	v.SetDefault("backend.db.driver", "sqlite")
	v.SetDefault("backend.db.path", "instance/jewel_system.db")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 3306)
	v.SetDefault("backend.db.user", "root")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "jewel_system")
	v.SetDefault("backend.jwt.secret", "jewel_secret")
	v.SetDefault("backend.jwt.issuer", "jewel-lending")
	v.SetDefault("backend.jwt.exp_min", 24*60)
	v.SetDefault("backend.session.cookie", "jewel_session")
	v.SetDefault("backend.session.flash_cookie", "jewel_flash")
	v.SetDefault("backend.redis.addr", "")
	v.SetDefault("backend.redis.password", "")
	v.SetDefault("backend.redis.db", 0)
	v.SetDefault("backend.upload.dir", "static/uploads")
	v.SetDefault("backend.upload.max_bytes", 10<<20)
	v.SetDefault("backend.admin.name", "Admin")
	v.SetDefault("backend.admin.email", "admin@example.com")
	v.SetDefault("backend.admin.password", "password")
	v.SetDefault("backend.auth.allow_role_field", false)
	v.SetDefault("backend.log.level", "info")
	v.SetDefault("backend.log.format", "console")

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("backend.http.host"), Port: v.GetInt("backend.http.port")},
		DB: DB{
			Driver: strings.ToLower(v.GetString("backend.db.driver")),
			Path:   v.GetString("backend.db.path"),
			Host:   v.GetString("backend.db.host"),
			Port:   v.GetInt("backend.db.port"),
			User:   v.GetString("backend.db.user"),
			Pass:   v.GetString("backend.db.pass"),
			Name:   v.GetString("backend.db.name"),
		},
		Redis: Redis{
			Addr:     v.GetString("backend.redis.addr"),
			Password: v.GetString("backend.redis.password"),
			DB:       v.GetInt("backend.redis.db"),
		},
		Session: Session{
			Cookie:      v.GetString("backend.session.cookie"),
			FlashCookie: v.GetString("backend.session.flash_cookie"),
		},
		Upload: Upload{Dir: v.GetString("backend.upload.dir"), MaxBytes: v.GetInt64("backend.upload.max_bytes")},
		Admin: Admin{
			Name:     v.GetString("backend.admin.name"),
			Email:    v.GetString("backend.admin.email"),
			Password: v.GetString("backend.admin.password"),
		},
		Log: Log{Level: v.GetString("backend.log.level"), Format: v.GetString("backend.log.format")},
		v:   v,
	}
	cfg.JWT.Secret = v.GetString("backend.jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "jewel_secret"
	}
	cfg.JWT.Issuer = v.GetString("backend.jwt.issuer")
	cfg.JWT.ExpMin = v.GetInt("backend.jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 24 * 60
	}
	cfg.Auth.AllowRoleField = v.GetBool("backend.auth.allow_role_field")
	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = 10 << 20
	}

	switch cfg.DB.Driver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}

// Watch re-reads the log level whenever the config file changes on disk.
// It is a no-op when the config was loaded without an existing file.
func (c *Config) Watch(onLevel func(level string)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}
	if _, err := os.Stat(c.v.ConfigFileUsed()); err != nil {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level := c.v.GetString("backend.log.level")
		c.Log.Level = level
		onLevel(level)
	})
	c.v.WatchConfig()
}
