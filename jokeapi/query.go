package jokeapi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// DefaultBaseURL адрес публичного JokeAPI
const DefaultBaseURL = "https://v2.jokeapi.dev"

// anyCategory подставляется в путь, если категории не заданы
const anyCategory = "Any"

var queryEncoder = schema.NewEncoder()

// queryParams параметры строки запроса в том виде, в котором их ждёт JokeAPI
type queryParams struct {
	Language       string `schema:"language"`
	Type           string `schema:"type"`
	BlacklistFlags string `schema:"blacklistFlags,omitempty"`
	Contains       string `schema:"contains,omitempty"`
	IDRange        string `schema:"idRange,omitempty"`
	Amount         string `schema:"amount,omitempty"`
}

func newQueryParams(o Options) queryParams {
	q := queryParams{
		Language:       string(o.Language),
		Type:           joinValues(o.Types),
		BlacklistFlags: joinValues(o.BlacklistFlags),
		Contains:       o.SearchString,
	}
	if o.IDRange != 0 {
		q.IDRange = "0-" + strconv.Itoa(o.IDRange)
	}
	if o.Amount != 0 {
		q.Amount = strconv.FormatFloat(o.Amount, 'f', -1, 64)
	}
	return q
}

// categorySegment сегмент пути со списком категорий
func categorySegment(categories []Category) string {
	if len(categories) == 0 {
		return anyCategory
	}
	return joinValues(categories)
}

// buildURL собирает адрес запроса из уже проверенных параметров
func buildURL(baseURL string, o Options) (string, error) {
	values := url.Values{}
	if err := queryEncoder.Encode(newQueryParams(o), values); err != nil {
		return "", err
	}
	endpoint := strings.TrimSuffix(baseURL, "/") + "/joke/" + categorySegment(o.Categories)
	return endpoint + "?" + values.Encode(), nil
}
