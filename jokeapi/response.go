package jokeapi

import "errors"

var errNoJokes = errors.New("jokeapi: decode response: no jokes in body")

// rawJoke анекдот в том виде, в котором его отдаёт JokeAPI
type rawJoke struct {
	Category Category `json:"category"`
	Type     JokeType `json:"type"`
	Joke     string   `json:"joke"`
	Setup    string   `json:"setup"`
	Delivery string   `json:"delivery"`
}

// apiResponse общее тело ответа: одиночный анекдот, список или ошибка
type apiResponse struct {
	Error          bool     `json:"error"`
	Code           int      `json:"code"`
	Message        string   `json:"message"`
	Causes         []string `json:"causes"`
	AdditionalInfo string   `json:"additionalInfo"`

	rawJoke

	Jokes []rawJoke `json:"jokes"`
}

func (r *apiResponse) apiError() error {
	if !r.Error {
		return nil
	}
	return &APIError{
		Code:           r.Code,
		Message:        r.Message,
		Causes:         r.Causes,
		AdditionalInfo: r.AdditionalInfo,
	}
}

// toJoke выбирает вариант по тегу type. Поля не проверяются.
func (r rawJoke) toJoke() Joke {
	if r.Type == TypeSingle {
		return SingleJoke{
			Category: r.Category,
			Type:     TypeSingle,
			Joke:     r.Joke,
		}
	}
	return TwoPartJoke{
		Category: r.Category,
		Type:     TypeTwoPart,
		Setup:    r.Setup,
		Delivery: r.Delivery,
	}
}

// mapJokes сохраняет порядок ответа. При amount=1 JokeAPI возвращает
// анекдот без обёртки jokes, такой ответ становится списком из одного элемента.
// Тело без jokes и без type считается ошибкой.
func (r *apiResponse) mapJokes() ([]Joke, error) {
	if r.Jokes == nil {
		if r.Type == "" {
			return nil, errNoJokes
		}
		return []Joke{r.rawJoke.toJoke()}, nil
	}
	jokes := make([]Joke, len(r.Jokes))
	for i, raw := range r.Jokes {
		jokes[i] = raw.toJoke()
	}
	return jokes, nil
}
