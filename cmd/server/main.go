// @title Pack API
// @version 1.0
// @description Accounts, sessions and school data for the Pack app.
// @BasePath /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pack/config"
	"pack/internal/alert"
	"pack/internal/class"
	"pack/internal/code"
	"pack/internal/logger"
	"pack/internal/login"
	"pack/internal/model"
	"pack/internal/register"
	"pack/internal/route"
	"pack/internal/schoolwork"
	"pack/internal/session"
	"pack/internal/settings"
	"pack/internal/user"
	"pack/pkg/database"
	"pack/pkg/email"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := os.Getenv("PACK_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	config.MustLoad(configPath)
	conf := config.Conf

	if err := logger.Setup(conf.Log); err != nil {
		logrus.Fatalf("logger setup: %v", err)
	}
	gin.SetMode(conf.Server.Mode)

	db, err := database.InitPostgres(&database.PostgresConfig{
		ServiceName:     "pack",
		Username:        conf.Database.Username,
		Password:        conf.Database.Password,
		Host:            conf.Database.Host,
		Port:            conf.Database.Port,
		Database:        conf.Database.Database,
		SSLMode:         conf.Database.SSLMode,
		LogLevel:        conf.Database.LogLevel,
		MaxIdleConns:    conf.Database.MaxIdleConns,
		MaxOpenConns:    conf.Database.MaxOpenConns,
		ConnMaxLifetime: time.Duration(conf.Database.MaxLifetime) * time.Second,
	})
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := model.InitTable(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}

	rdb, err := database.InitRedis(&database.RedisConfig{
		ServiceName: "pack",
		Host:        conf.Redis.Host,
		Port:        conf.Redis.Port,
		Password:    conf.Redis.Password,
		DB:          conf.Redis.DB,
		PoolSize:    conf.Redis.PoolSize,
	})
	if err != nil {
		logrus.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	mailer := email.NewClient(&conf.Smtp)
	users := user.NewRepository(db)
	sessions := session.NewRepository(db)
	resolver := session.NewResolver(sessions, users, conf.Session.CookieName)
	issuer := session.NewIssuer(sessions, users, conf.Session.TTL)
	alerter := alert.New(mailer, conf.Alert.From, conf.Alert.Recipients, conf.Smtp.Host)

	r := route.SetupRouter(conf, route.Deps{
		Sessions:   sessions,
		Resolver:   resolver,
		Login:      login.NewService(users, issuer, conf.Bcrypt.Cost),
		Register:   register.NewRegisterService(users, issuer, alerter, conf.Bcrypt.Cost, class.GenerateJoinCode),
		Settings:   settings.NewService(users, code.NewStore(rdb, conf.Code.TTL, code.WithRateLimit(conf.Code.RateLimit, conf.Code.RateWindow)), mailer, issuer, conf.Code.From, conf.Code.Length, conf.Bcrypt.Cost),
		Classes:    class.NewClassService(class.NewRepository(db)),
		Schoolwork: schoolwork.NewSchoolworkService(schoolwork.NewRepository(db)),
	})

	srv := &http.Server{
		Addr:         conf.Server.Addr(),
		Handler:      r,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
