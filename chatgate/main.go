package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/config"
	"chatgate/chatgate/controllers"
	"chatgate/chatgate/routes"
	"chatgate/chatgate/services/ratelimit"
	"chatgate/chatgate/services/responder"
	"chatgate/chatgate/sources/psql"
	"chatgate/chatgate/sources/psql/dao"
	"chatgate/chatgate/sources/session"
	"chatgate/chatgate/utils/logging"
	"chatgate/chatgate/web"
	"chatgate/chatgate/widget"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	resp, err := responder.New(cfg)
	if err != nil {
		logging.ErrorLogger.Error("responder error", zap.Error(err))
		os.Exit(1)
	}
	chatCtrl := controllers.NewChatController(resp)
	healthCtrl := controllers.NewHealthController()

	if cfg.DatabaseEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := psql.NewDatabase(ctx, cfg)
		cancel()
		if err != nil {
			logging.ErrorLogger.Error("database connection error", zap.Error(err))
			os.Exit(1)
		}
		defer db.Close()
		chatCtrl.WithTranscripts(dao.NewTranscriptDAO(db.DB))
		healthCtrl.Register("database", func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}

	if cfg.RateLimitEnabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		chatCtrl.WithRateLimit(ratelimit.NewLimiter(rdb), ratelimit.ChatRule(cfg.RateLimit, cfg.RateWindow))
		healthCtrl.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	provider := auth.NewProvider(cfg)
	sessions := session.NewStore(cfg.SessionTTL)
	signer := auth.NewCookieSigner(cfg.SessionSecret, cfg.SessionTTL, strings.HasPrefix(cfg.AppOrigin, "https://"))
	view, err := web.NewView()
	if err != nil {
		logging.ErrorLogger.Error("template error", zap.Error(err))
		os.Exit(1)
	}

	deps := routes.Deps{
		Chat:     chatCtrl,
		Auth:     controllers.NewAuthController(provider, sessions, cfg.AppOrigin),
		Widget:   controllers.NewWidgetController(widget.New(widget.NewClient(cfg.ChatAPIEndpoint, cfg.RelayTimeout))),
		Health:   healthCtrl,
		View:     view,
		Signer:   signer,
		Sessions: sessions,
	}
	if cfg.RequireAuth {
		deps.Verifier = auth.NewUserInfoVerifier(provider, 5*time.Minute)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr), zap.Bool("require_auth", cfg.RequireAuth))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
