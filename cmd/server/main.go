package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sumafit/medstore/internal/config"
	"github.com/sumafit/medstore/internal/es"
	"github.com/sumafit/medstore/internal/handlers"
	"github.com/sumafit/medstore/internal/logging"
	authmw "github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/mykafka"
	"github.com/sumafit/medstore/internal/seed"
	httpserver "github.com/sumafit/medstore/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var brokers []string
	if configuration.KAFKA_ADDRESS != "" {
		brokers = []string{configuration.KAFKA_ADDRESS}
	}
	prod, err := mykafka.NewProducer(brokers)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Printf("elasticsearch unavailable, using database search: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{configuration.CORS_ORIGIN},
		AllowCredentials: true,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Static("/uploads", configuration.UPLOAD_DIR)

	tokens := &authmw.TokenService{
		DB:         db,
		JWTSecret:  []byte(configuration.JWT_SECRET),
		SessionTTL: time.Duration(configuration.SESSION_DAYS) * 24 * time.Hour,
	}

	deps := httpserver.Deps{
		Tokens: tokens,
		AuthHandler: &handlers.AuthHandler{
			DB:       db,
			Tokens:   tokens,
			Producer: prod,
			TokenTTL: time.Duration(configuration.TOKEN_DAYS) * 24 * time.Hour,
		},
		ProductHandler:     &handlers.ProductHandler{DB: db, ES: esClient, Producer: prod},
		ServiceHandler:     &handlers.ServiceHandler{DB: db},
		NewsHandler:        &handlers.NewsHandler{DB: db},
		FavoriteHandler:    &handlers.FavoriteHandler{DB: db},
		OrderHandler:       &handlers.OrderHandler{DB: db, Producer: prod},
		AppointmentHandler: &handlers.AppointmentHandler{DB: db},
		ReviewHandler:      &handlers.ReviewHandler{DB: db},
		SettingsHandler:    &handlers.SettingsHandler{DB: db},
		OfficeHandler:      &handlers.OfficeHandler{DB: db},
		LocationHandler:    &handlers.LocationHandler{DB: db},
		NewsletterHandler:  &handlers.NewsletterHandler{DB: db},
		EmailChangeHandler: &handlers.EmailChangeHandler{DB: db},
		UserAdminHandler:   &handlers.UserAdminHandler{DB: db},
		UploadHandler:      &handlers.UploadHandler{DB: db, UploadDir: configuration.UPLOAD_DIR},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	prod.Close()

	log.Println("shutdown complete")
}
