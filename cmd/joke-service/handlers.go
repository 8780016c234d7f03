package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"

	"github.com/Antonisiy/jokeapi/jokeapi"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// app зависимости HTTP-обработчиков и бота
type app struct {
	jokes JokeFetcher
	cfg   *Config
	bot   botAPI
}

func (a *app) newRouter() *mux.Router {
	router := mux.NewRouter()
	// Подключаем middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware(a.cfg.AllowedOrigins))

	// Регистрируем маршруты
	router.HandleFunc("/joke", a.getJokeHandler).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/jokes", a.getJokesHandler).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/healthz", a.healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/telegram-webhook", a.telegramWebhookHandler).Methods(http.MethodPost)
	return router
}

// splitList разбивает элементы вида "Pun,Dark" на отдельные значения
func splitList[T ~string](values []T) []T {
	var out []T
	for _, v := range values {
		for _, part := range strings.Split(string(v), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, T(part))
			}
		}
	}
	return out
}

// options переводит параметры запроса в jokeapi.Options с умолчаниями из конфига
func (a *app) options(q jokeQuery) *jokeapi.Options {
	opts := &jokeapi.Options{
		Categories:     splitList(q.Categories),
		Language:       q.Language,
		BlacklistFlags: splitList(q.Blacklist),
		Types:          splitList(q.Types),
		SearchString:   q.Contains,
		IDRange:        q.IDRange,
		Amount:         q.Amount,
	}
	if opts.Language == "" {
		opts.Language = a.cfg.Language
	}
	if len(opts.BlacklistFlags) == 0 {
		opts.BlacklistFlags = a.cfg.BlacklistFlags
	}
	return opts
}

func (a *app) decodeQuery(r *http.Request) (*jokeapi.Options, error) {
	var q jokeQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		return nil, err
	}
	return a.options(q), nil
}

func (a *app) getJokeHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := a.decodeQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Некорректные параметры запроса: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()

	joke, err := a.jokes.GetJoke(ctx, opts)
	if err != nil {
		writeJokeError(w, err)
		return
	}

	logger.Debugf("Получен анекдот (%s, %s)", joke.Kind(), joke.JokeCategory())
	writeJSON(w, http.StatusOK, joke)
}

func (a *app) getJokesHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := a.decodeQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Некорректные параметры запроса: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()

	jokes, err := a.jokes.GetJokes(ctx, opts)
	if err != nil {
		writeJokeError(w, err)
		return
	}

	logger.Debugf("Получено анекдотов: %d", len(jokes))
	writeJSON(w, http.StatusOK, jokesResponse{Jokes: jokes})
}

func (a *app) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: Version})
}

// writeJokeError выбирает код ответа по виду ошибки
func writeJokeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, jokeapi.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, jokeapi.ErrAPI):
		logger.Warnf("JokeAPI вернул ошибку: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		logger.Errorf("Ошибка получения анекдота: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Анекдоты временно недоступны"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("Ошибка сериализации ответа в JSON: %v", err)
	}
}
