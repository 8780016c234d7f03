package main

import (
	"context"

	"github.com/Antonisiy/jokeapi/jokeapi"
)

// JokeFetcher источник анекдотов; *jokeapi.Client его реализует
type JokeFetcher interface {
	GetJoke(ctx context.Context, opts *jokeapi.Options) (jokeapi.Joke, error)
	GetJokes(ctx context.Context, opts *jokeapi.Options) ([]jokeapi.Joke, error)
}

// jokeQuery параметры запросов /joke и /jokes.
// Списки можно передавать повтором параметра или через запятую.
type jokeQuery struct {
	Categories []jokeapi.Category `schema:"category"`
	Language   jokeapi.Language   `schema:"lang"`
	Blacklist  []jokeapi.Flag     `schema:"blacklist"`
	Types      []jokeapi.JokeType `schema:"type"`
	Contains   string             `schema:"contains"`
	IDRange    int                `schema:"idRange"`
	Amount     float64            `schema:"amount"`
}

type jokesResponse struct {
	Jokes []jokeapi.Joke `json:"jokes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
