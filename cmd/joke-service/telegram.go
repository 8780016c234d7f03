package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Antonisiy/jokeapi/jokeapi"
)

const (
	moreJokeCallback = "more_joke"
	maxBotJokes      = 10
)

// botAPI часть *tgbotapi.BotAPI, которая нужна боту
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var startText = "Привет! Я бот-анекдотчик 🤖\n\n" +
	"/joke — случайный анекдот\n" +
	"/jokes N — сразу N анекдотов (до 10)\n" +
	"/pun — каламбур\n" +
	"/programming — анекдот про программистов"

var helpText = "Используйте /joke для получения случайного анекдота."

// telegramWebhookHandler обрабатывает входящие webhook-запросы Telegram
func (a *app) telegramWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if a.bot == nil {
		logger.Warn("Получен webhook, но Telegram-бот не настроен")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	update := tgbotapi.Update{}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Errorf("Ошибка декодирования webhook: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()

	a.processTelegramUpdate(ctx, update)
	w.WriteHeader(http.StatusOK)
}

// processTelegramUpdate обрабатывает update (логика Telegram-бота)
func (a *app) processTelegramUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil && update.CallbackQuery.Data == moreJokeCallback {
		if _, err := a.bot.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			logger.Errorf("Ошибка ответа на callback: %v", err)
		}
		if update.CallbackQuery.Message != nil {
			a.sendJoke(ctx, update.CallbackQuery.Message.Chat.ID, nil)
		}
		return
	}
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	switch update.Message.Command() {
	case "start":
		a.send(tgbotapi.NewMessage(chatID, startText))
	case "joke":
		a.sendJoke(ctx, chatID, nil)
	case "pun":
		a.sendJoke(ctx, chatID, []jokeapi.Category{jokeapi.CategoryPun})
	case "programming":
		a.sendJoke(ctx, chatID, []jokeapi.Category{jokeapi.CategoryProgramming})
	case "jokes":
		a.sendJokes(ctx, chatID, update.Message.CommandArguments())
	default:
		a.send(tgbotapi.NewMessage(chatID, helpText))
	}
}

func (a *app) botOptions(categories []jokeapi.Category) *jokeapi.Options {
	return &jokeapi.Options{
		Categories:     categories,
		Language:       a.cfg.Language,
		BlacklistFlags: a.cfg.BlacklistFlags,
	}
}

func (a *app) sendJoke(ctx context.Context, chatID int64, categories []jokeapi.Category) {
	joke, err := a.jokes.GetJoke(ctx, a.botOptions(categories))
	if err != nil {
		logger.Errorf("Ошибка получения анекдота для чата %d: %v", chatID, err)
		a.send(tgbotapi.NewMessage(chatID, "Анекдоты временно недоступны"))
		return
	}
	msg := tgbotapi.NewMessage(chatID, joke.Text())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ещё анекдот", moreJokeCallback),
		),
	)
	a.send(msg)
}

func (a *app) sendJokes(ctx context.Context, chatID int64, args string) {
	amount, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || amount < 1 || amount > maxBotJokes {
		a.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Укажите число от 1 до %d, например: /jokes 3", maxBotJokes)))
		return
	}

	opts := a.botOptions(nil)
	opts.Amount = float64(amount)
	jokes, err := a.jokes.GetJokes(ctx, opts)
	if err != nil {
		logger.Errorf("Ошибка получения анекдотов для чата %d: %v", chatID, err)
		a.send(tgbotapi.NewMessage(chatID, "Анекдоты временно недоступны"))
		return
	}
	for _, joke := range jokes {
		a.send(tgbotapi.NewMessage(chatID, joke.Text()))
	}
}

func (a *app) send(c tgbotapi.Chattable) {
	if _, err := a.bot.Send(c); err != nil {
		logger.Errorf("Ошибка отправки сообщения в Telegram: %v", err)
	}
}
