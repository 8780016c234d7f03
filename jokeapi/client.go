// Package jokeapi тонкий клиент JokeAPI (https://v2.jokeapi.dev).
//
// Options проверяются до сетевого запроса; ошибки входных данных
// совпадают с ErrValidation через errors.Is. Списки типов, категорий и
// флагов проходят, если в них есть хотя бы одно допустимое значение.
// Отрицательный IDRange отклоняется. Ответ приводится к Joke
// (SingleJoke или TwoPartJoke).
package jokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"golang.org/x/net/html/charset"
)

// Doer выполняет HTTP-запрос. *http.Client подходит.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client клиент JokeAPI. Не меняется после создания, безопасен для
// одновременного использования.
type Client struct {
	baseURL    string
	httpClient Doer
	userAgent  string
}

// ClientOption настраивает Client
type ClientOption func(*Client)

// WithHTTPClient подменяет транспорт (например, в тестах)
func WithHTTPClient(d Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithBaseURL задаёт адрес JokeAPI, по умолчанию DefaultBaseURL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithUserAgent задаёт заголовок User-Agent
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New создаёт клиента
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient используется функциями GetJoke и GetJokes пакета
var DefaultClient = New()

// GetJoke вызывает DefaultClient.GetJoke
func GetJoke(ctx context.Context, opts *Options) (Joke, error) {
	return DefaultClient.GetJoke(ctx, opts)
}

// GetJokes вызывает DefaultClient.GetJokes
func GetJokes(ctx context.Context, opts *Options) ([]Joke, error) {
	return DefaultClient.GetJokes(ctx, opts)
}

// GetJoke запрашивает один анекдот. opts может быть nil.
// Amount задавать нельзя, для нескольких анекдотов есть GetJokes.
func (c *Client) GetJoke(ctx context.Context, opts *Options) (Joke, error) {
	o, err := prepareOne(opts)
	if err != nil {
		return nil, err
	}
	endpoint, err := buildURL(c.baseURL, o)
	if err != nil {
		return nil, fmt.Errorf("jokeapi: build url: %w", err)
	}

	var res apiResponse
	if err := c.fetch(ctx, endpoint, &res); err != nil {
		return nil, err
	}
	if err := res.apiError(); err != nil {
		return nil, err
	}
	return res.rawJoke.toJoke(), nil
}

// GetJokes запрашивает opts.Amount анекдотов в порядке ответа JokeAPI
func (c *Client) GetJokes(ctx context.Context, opts *Options) ([]Joke, error) {
	o, err := prepareMany(opts)
	if err != nil {
		return nil, err
	}
	endpoint, err := buildURL(c.baseURL, o)
	if err != nil {
		return nil, fmt.Errorf("jokeapi: build url: %w", err)
	}

	var res apiResponse
	if err := c.fetch(ctx, endpoint, &res); err != nil {
		return nil, err
	}
	if err := res.apiError(); err != nil {
		return nil, err
	}
	return res.mapJokes()
}

// fetch выполняет GET и декодирует JSON-ответ в v
func (c *Client) fetch(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("jokeapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jokeapi: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := decodeCharset(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return fmt.Errorf("jokeapi: decode charset: %w", err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("jokeapi: read body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("jokeapi: decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

// decodeCharset перекодирует тело в UTF-8, только если Content-Type явно
// называет другую кодировку. Без charset тело считается UTF-8.
func decodeCharset(body io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	label := params["charset"]
	if label == "" {
		return body, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	if name == "utf-8" {
		return body, nil
	}
	return charset.NewReaderLabel(label, body)
}
