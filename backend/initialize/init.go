package initialize

import (
	"context"
	"fmt"
	"net/http"

	"asset-dashboard/backend/app/controllers"
	"asset-dashboard/backend/app/db"
	jwtutil "asset-dashboard/backend/app/jwt"
	"asset-dashboard/backend/app/middleware"
	"asset-dashboard/backend/app/repo"
	"asset-dashboard/backend/app/services"
	"asset-dashboard/backend/config"
	"asset-dashboard/backend/global"
	"asset-dashboard/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Router   http.Handler
	Assets   *services.AssetService
	Users    *services.UserService
	AssetAPI *controllers.AssetController
}

func Build(ctx context.Context, configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg
	SetLogLevel(cfg.LogLevel)

	// Connect DB
	gdb, err := db.Connect(db.Config{Driver: cfg.DB.Driver, Path: cfg.DB.Path, Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Connect Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	global.Rdb = rdb
	state := repo.NewStateRepository(rdb)
	if err := state.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}

	// Services
	userSvc := services.NewUserService(repo.NewUserRepository(gdb))
	assetSvc := services.NewAssetService(repo.NewAssetRepository(gdb), state)
	if err := userSvc.EnsureAdmin(cfg.Admin.User, cfg.Admin.Pass); err != nil {
		global.Logger.Warn().Err(err).Msg("ensure admin user")
	}
	if n, err := userSvc.Admins(); err == nil && n == 0 {
		global.Logger.Warn().Msg("no admin account; power and load routes are unreachable")
	}
	if cfg.TopologyPath != "" {
		if err := assetSvc.SeedTopologyFile(ctx, cfg.TopologyPath); err != nil {
			return nil, err
		}
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	httpCtrl := controllers.NewHTTPController()
	authCtrl := controllers.NewAuthController(userSvc, signer)
	assetCtrl := controllers.NewAssetController(assetSvc)
	mw := &middleware.Auth{Signer: signer}

	// Router
	h := router.NewRouter(httpCtrl, authCtrl, assetCtrl, mw)
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Redis: rdb, Router: h, Assets: assetSvc, Users: userSvc, AssetAPI: assetCtrl}, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
