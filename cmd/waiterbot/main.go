// Command waiterbot runs the Telegram food-order bot and its ops HTTP
// server. The bot long-polls Telegram for commands and group chatter; the
// HTTP side exposes health, Prometheus metrics, and a read-only order view.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/bot"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/config"
	httpapi "github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/http"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/observability"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/repo"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/services"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg := config.MustLoad()
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}

	rdb, err := repo.NewRedisClient(ctx, repo.RedisOptions{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		DB:          cfg.Redis.DB,
		Password:    cfg.Redis.Password,
		DialTimeout: cfg.Redis.DialTimeout,
		OpTimeout:   cfg.Redis.OpTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).
			Str("host", cfg.Redis.Host).
			Int("port", cfg.Redis.Port).
			Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	orders := &services.OrderService{RDB: rdb}
	archive := &services.ArchiveService{RDB: rdb}

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	httpapi.RegisterRoutes(router, orders, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.OpsPort,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("ops server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("ops server failed")
			stop()
		}
	}()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram authorization failed")
	}
	log.Info().Str("account", api.Self.UserName).Str("version", version).Msg("starting bot")

	b := bot.New(api, orders, archive, cfg.RateRPS, cfg.RateBurst)
	b.Run(ctx)

	// Polling returned: either a signal arrived or the update channel closed.
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("ops server shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown failed")
	}
	log.Info().Msg("stopped")
}
