package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Antonisiy/jokeapi/jokeapi"
)

var (
	port       = flag.String("port", "", "Порт для запуска сервера (перекрывает конфиг)")
	configPath = flag.String("config", "config.yaml", "Путь к файлу конфигурации")
)

func main() {
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	// Set up logging
	if err := setupLogger(cfg); err != nil {
		logger.Fatalf("Неверный log_level %q: %v", cfg.LogLevel, err)
	}

	a := &app{
		jokes: jokeapi.New(
			jokeapi.WithBaseURL(cfg.BaseURL),
			jokeapi.WithUserAgent("joke-service/"+Version),
		),
		cfg: cfg,
	}

	if cfg.TelegramBotToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			logger.Errorf("Ошибка запуска Telegram-бота: %v", err)
		} else {
			logger.Infof("Telegram-бот авторизован как %s", bot.Self.UserName)
			a.bot = bot
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.newRouter(),
	}

	// Канал для получения сигналов операционной системы
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем сервер в отдельной горутине
	go func() {
		logger.Infof("Сервис %s запущен на порту :%s, JokeAPI: %s", Version, cfg.Port, cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-done
	logger.Info("Получен сигнал завершения, начинаем graceful shutdown...")

	// Создаем контекст с таймаутом для graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Ошибка при graceful shutdown: %v", err)
		os.Exit(1)
	}

	logger.Info("Сервер успешно остановлен")
}
