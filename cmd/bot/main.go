package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework-bot/internal/bot"
	"homework-bot/internal/google/auth"
	"homework-bot/internal/google/gsheets"
	"homework-bot/internal/models/config"
	"homework-bot/internal/repository/textbook"
	"homework-bot/internal/repository/user"
	homework_service "homework-bot/internal/service/homework"
	schedule_service "homework-bot/internal/service/schedule"
	summary_service "homework-bot/internal/service/summary"
	textbook_service "homework-bot/internal/service/textbook"
	user_service "homework-bot/internal/service/user"
	"homework-bot/internal/web"
	database "homework-bot/pkg"

	_ "github.com/lib/pq"
)

func main() {
	// Загружаем конфигурацию
	if err := config.Load(); err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	cfg := config.AppConfig
	log.Printf("🚀 Запуск в окружении: %s", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Подключаемся к БД
	db, err := database.NewPostgres()
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к БД: %v", err)
	}
	defer db.Close()

	mongoDB, err := database.NewMongo(ctx)
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(context.Background())

	authManager := auth.NewManager(cfg.Google)

	// Журнал расходов токенов опционален: без таблицы бот работает дальше
	var sheetsClient *gsheets.Client
	if cfg.Google.SpreadsheetID != "" {
		sheetsClient, err = gsheets.NewClient(ctx, cfg.Google.ServiceAccountFile, cfg.Google.SpreadsheetID)
		if err != nil {
			log.Printf("⚠️ Google Sheets недоступен, журнал отключён: %v", err)
			sheetsClient = nil
		} else {
			log.Printf("📊 Журнал запросов к AI: таблица %s", cfg.Google.SpreadsheetID)
		}
	}

	// Инициализация репозиториев
	userRepo := user.NewUserRepository(db)
	textbookRepo := textbook.NewTextbookRepository(mongoDB)

	// Инициализация сервисов
	userService := user_service.NewUserService(userRepo, authManager)
	homeworkService := homework_service.NewHomeworkService(userRepo, authManager)
	scheduleService := schedule_service.NewScheduleService(authManager)
	textbookService := textbook_service.NewTextbookService(textbookRepo, authManager)
	summaryService := summary_service.NewSummaryService(cfg.OpenAI.APIKey, sheetsClient)

	telegramBot, err := bot.NewBot(
		userService,
		homeworkService,
		scheduleService,
		textbookService,
		summaryService,
		authManager,
	)
	if err != nil {
		log.Fatal("❌ Failed to create bot:", err)
	}

	// OAuth-сервер: принимает редирект Google и сообщает боту об успехе
	webHandler := web.NewHandler(authManager, telegramBot.OnAuthSuccess)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: webHandler.Routes(),
	}
	go func() {
		log.Printf("🌐 OAuth-сервер слушает %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Ошибка OAuth-сервера: %v", err)
			stop()
		}
	}()

	// Запускаем бота в горутине
	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			log.Printf("❌ Ошибка запуска бота: %v", err)
			stop()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Println("🛑 Получен сигнал завершения...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Остановка OAuth-сервера: %v", err)
	}

	log.Println("👋 Корректное завершение работы")
}
