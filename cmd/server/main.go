package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/config"
	"github.com/VitaminP8/bloggery/internal/oauth/kakao"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/server"
	"github.com/VitaminP8/bloggery/internal/session"
	"github.com/VitaminP8/bloggery/internal/storage/memory"
	"github.com/VitaminP8/bloggery/internal/storage/postgres"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	addr := flag.String("addr", ":8080", "Адрес HTTP сервера")
	templateDir := flag.String("templates", "web/templates", "Каталог HTML шаблонов")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()
		userStore = postgres.NewUserPostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		memPosts := memory.NewPostMemoryStorage()
		memComments := memory.NewCommentMemoryStorage(memPosts)
		// каскадное удаление комментариев при удалении поста
		memPosts.OnDelete(memComments.DeleteCommentsForPost)
		postStore = memPosts
		commentStore = memComments
		userStore = memory.NewUserMemoryStorage()

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	sessionTTL := session.DefaultTTL
	if hours, err := strconv.Atoi(config.GetEnvDefault("SESSION_TTL_HOURS", "")); err == nil && hours > 0 {
		sessionTTL = time.Duration(hours) * time.Hour
	}
	sessions := session.NewStore(sessionTTL)

	oauthClient, err := kakao.NewClient(&kakao.Config{
		ClientID:     config.GetEnv("KAKAO_CLIENT_ID"),
		ClientSecret: config.GetEnvDefault("KAKAO_CLIENT_SECRET", ""),
		RedirectURL:  config.GetEnv("OAUTH_REDIRECT_URI"),
	})
	if err != nil {
		log.Fatalf("failed to create oauth client: %v", err)
	}

	srv, err := server.New(postStore, commentStore, userStore, sessions, oauthClient, *templateDir)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	// HTTP сервер
	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv,
	}

	// запуск HTTP сервера
	go func() {
		log.Printf("Сервер запущен на http://localhost%s/", *addr)
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Println("Завершение...")

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}

	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	log.Println("Сервер остановлен корректно")
}
