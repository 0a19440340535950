package initialize

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jewel-lending/backend/app/controllers"
	"jewel-lending/backend/app/db"
	jwtutil "jewel-lending/backend/app/jwt"
	"jewel-lending/backend/app/middleware"
	"jewel-lending/backend/app/repo"
	"jewel-lending/backend/app/services"
	"jewel-lending/backend/app/session"
	"jewel-lending/backend/app/storage"
	"jewel-lending/backend/app/views"
	"jewel-lending/backend/config"
	"jewel-lending/backend/global"
	"jewel-lending/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Core is the domain layer shared by the HTTP server and the admin console.
type Core struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Repos   *repo.Repos
	Images  *storage.DiskStore
	Users   *services.UserService
	Jewels  *services.JewelService
	Lending *services.LendingService
}

// NewCore connects and migrates the database, then seeds the admin account.
func NewCore(ctx context.Context, cfg *config.Config) (*Core, error) {
	gdb, err := db.Connect(db.Config{
		Driver: cfg.DB.Driver, Path: cfg.DB.Path,
		Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name,
	}, &global.Logger)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	images, err := storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return nil, err
	}

	repos := repo.New(gdb)
	core := &Core{
		Cfg:     cfg,
		DB:      gdb,
		Repos:   repos,
		Images:  images,
		Users:   services.NewUserService(repos.Users),
		Jewels:  services.NewJewelService(repos, images),
		Lending: services.NewLendingService(repos, time.Now),
	}

	created, err := core.Users.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		global.Logger.Info().Str("email", cfg.Admin.Email).Msg("admin account created")
	}
	return core, nil
}

func (c *Core) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type App struct {
	*Core
	Sessions session.Store
	Router   http.Handler
}

// Build wires the HTTP application from an already loaded config.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	core, err := NewCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := newSessionStore(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	tmpl, err := views.New()
	if err != nil {
		return nil, err
	}

	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	sessions := &middleware.Sessions{
		Signer:      signer,
		Store:       store,
		Cookie:      cfg.Session.Cookie,
		FlashCookie: cfg.Session.FlashCookie,
	}
	base := controllers.Base{Views: tmpl, Sessions: sessions}
	h := router.NewRouter(router.Controllers{
		Auth:    controllers.NewAuthController(base, core.Users, cfg.Auth.AllowRoleField),
		Catalog: controllers.NewCatalogController(base, core.Jewels, core.Images, cfg.Upload.MaxBytes),
		Lending: controllers.NewLendingController(base, core.Lending, core.Jewels),
		Health:  controllers.NewHealthController(core.Repos),
	}, sessions)

	return &App{Core: core, Sessions: store, Router: h}, nil
}

// newSessionStore uses redis when an address is configured and an in-process store otherwise.
func newSessionStore(ctx context.Context, cfg config.Redis) (session.Store, error) {
	if cfg.Addr == "" {
		global.Logger.Info().Msg("session store: memory")
		return session.NewMemoryStore(), nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	global.Rdb = client
	global.Logger.Info().Str("addr", cfg.Addr).Msg("session store: redis")
	return session.NewRedisStore(client), nil
}
