package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-web-server/config"
	_ "blog-web-server/docs"
	"blog-web-server/internal/handler"
	"blog-web-server/internal/repository"
	"blog-web-server/internal/security"
	"blog-web-server/internal/service"
	"blog-web-server/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Blog-web-server
// @version 1.0
// @description REST API блог-платформы: пользователи, посты, загрузка изображений

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(".env"); err != nil {
		log.Println(".env не найден, используются переменные окружения")
	}

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if err := db.RunMigrations(cfg.DatabaseConfig.MigrationsDir); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.PostCache)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	tokenService := security.NewTokenService(&cfg.JWT)
	authService := service.NewAuthenticationService(userRepo, tokenService, &cfg.JWT)
	userService := service.NewUserService(userRepo, postRepo)
	postService := service.NewPostService(postRepo, cacheRepo, s3Service, time.Duration(cfg.TTL.PostCache)*time.Second)
	uploadService := service.NewUploadService(s3Service, time.Duration(cfg.Upload.URLTTL)*time.Second)

	authHandler := handler.NewAuthenticationHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.Upload.MaxSizeBytes)

	router.Use(util.RequestIDMiddleware)
	router.Use(util.MetricsMiddleware)
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	setupAuthRoutes(router, authHandler, tokenService)
	setupUserRoutes(router, userHandler, tokenService)
	setupPostRoutes(router, postHandler, tokenService)
	setupUploadRoutes(router, uploadHandler, tokenService)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, tokenService *security.TokenService) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(tokenService))
			r.Get("/profile", h.GetProfile)
		})
		r.Group(func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			// refresh и logout без middleware: access токен к этому моменту
			// мог истечь, субъект восстанавливается из refresh токена
			r.Post("/refresh", h.RefreshToken)
			r.Post("/logout", h.Logout)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, tokenService *security.TokenService) {
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Get("/{id}/posts", h.GetUserPosts)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(tokenService))
			r.Post("/", h.CreateUser)
			r.Patch("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})
	})
}

func setupPostRoutes(r chi.Router, h *handler.PostHandler, tokenService *security.TokenService) {
	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Get("/feed", h.FeedPosts)
		r.Get("/{slug}", h.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(tokenService))
			r.Post("/", h.CreatePost)
			r.Patch("/{id}", h.UpdatePost)
			r.Delete("/{id}", h.DeletePost)
		})
	})
}

func setupUploadRoutes(r chi.Router, h *handler.UploadHandler, tokenService *security.TokenService) {
	r.Route("/api/upload", func(r chi.Router) {
		r.Use(security.JWTMiddleware(tokenService))
		r.Post("/{kind}", h.UploadImage)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
