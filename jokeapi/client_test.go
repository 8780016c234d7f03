package jokeapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antonisiy/jokeapi/jokeapi"
)

// newTestClient поднимает сервер, отвечающий body на любой запрос
func newTestClient(t *testing.T, body string, lastURL *string) *jokeapi.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastURL != nil {
			*lastURL = r.URL.String()
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return jokeapi.New(jokeapi.WithBaseURL(srv.URL))
}

func TestGetJoke_Single(t *testing.T) {
	var got string
	c := newTestClient(t, `{"error":false,"category":"Pun","type":"single","joke":"I'm reading a book about anti-gravity.","flags":{"nsfw":false},"id":42,"safe":true,"lang":"en"}`, &got)

	joke, err := c.GetJoke(context.Background(), &jokeapi.Options{
		Categories: []jokeapi.Category{jokeapi.CategoryPun},
		Language:   jokeapi.LanguageEnglish,
		Types:      []jokeapi.JokeType{jokeapi.TypeSingle},
	})
	require.NoError(t, err)

	assert.Equal(t, jokeapi.SingleJoke{
		Category: jokeapi.CategoryPun,
		Type:     jokeapi.TypeSingle,
		Joke:     "I'm reading a book about anti-gravity.",
	}, joke)
	assert.True(t, jokeapi.IsSingleJoke(joke))
	assert.False(t, jokeapi.IsTwoPartJoke(joke))
	assert.Equal(t, "/joke/Pun?language=en&type=single", got)
}

func TestGetJoke_TwoPart(t *testing.T) {
	c := newTestClient(t, `{"category":"Programming","type":"twopart","setup":"Why?","delivery":"Because."}`, nil)

	joke, err := c.GetJoke(context.Background(), nil)
	require.NoError(t, err)

	tp, ok := joke.(jokeapi.TwoPartJoke)
	require.True(t, ok)
	assert.Equal(t, jokeapi.CategoryProgramming, tp.Category)
	assert.Equal(t, jokeapi.TypeTwoPart, tp.Type)
	assert.Equal(t, "Why?\nBecause.", joke.Text())
	assert.True(t, jokeapi.IsTwoPartJoke(joke))
}

func TestGetJokes_Batch(t *testing.T) {
	var got string
	c := newTestClient(t, `{"error":false,"amount":1,"jokes":[{"type":"twopart","category":"Dark","setup":"s","delivery":"d"}]}`, &got)

	jokes, err := c.GetJokes(context.Background(), &jokeapi.Options{Amount: 1})
	require.NoError(t, err)
	require.Len(t, jokes, 1)
	assert.True(t, jokeapi.IsTwoPartJoke(jokes[0]))
	assert.Equal(t, jokeapi.TwoPartJoke{
		Category: jokeapi.CategoryDark,
		Type:     jokeapi.TypeTwoPart,
		Setup:    "s",
		Delivery: "d",
	}, jokes[0])
	assert.Contains(t, got, "amount=1")
}

func TestGetJokes_PreservesOrder(t *testing.T) {
	c := newTestClient(t, `{"jokes":[
		{"type":"single","category":"Pun","joke":"first"},
		{"type":"twopart","category":"Spooky","setup":"second","delivery":"!"},
		{"type":"single","category":"Christmas","joke":"third"}
	]}`, nil)

	jokes, err := c.GetJokes(context.Background(), &jokeapi.Options{Amount: 3})
	require.NoError(t, err)
	require.Len(t, jokes, 3)
	assert.Equal(t, "first", jokes[0].Text())
	assert.Equal(t, "second\n!", jokes[1].Text())
	assert.Equal(t, "third", jokes[2].Text())
}

func TestGetJokes_UnwrappedSingleResult(t *testing.T) {
	c := newTestClient(t, `{"type":"single","category":"Misc","joke":"alone"}`, nil)

	jokes, err := c.GetJokes(context.Background(), &jokeapi.Options{Amount: 1})
	require.NoError(t, err)
	require.Len(t, jokes, 1)
	assert.Equal(t, "alone", jokes[0].Text())
}

func TestGetJoke_APIError(t *testing.T) {
	c := newTestClient(t, `{"error":true,"internalError":false,"code":106,"message":"No matching joke found","causes":["No jokes were found that match your provided filter(s)."],"additionalInfo":"..."}`, nil)

	_, err := c.GetJoke(context.Background(), &jokeapi.Options{SearchString: "zzzz"})
	require.Error(t, err)
	assert.ErrorIs(t, err, jokeapi.ErrAPI)
	assert.False(t, errors.Is(err, jokeapi.ErrValidation))

	var apiErr *jokeapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 106, apiErr.Code)
	assert.Equal(t, "No matching joke found", apiErr.Message)
}

func TestValidationHappensBeforeRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()
	c := jokeapi.New(jokeapi.WithBaseURL(srv.URL))
	ctx := context.Background()

	_, err := c.GetJoke(ctx, &jokeapi.Options{Amount: 3})
	assert.ErrorIs(t, err, jokeapi.ErrValidation)

	_, err = c.GetJokes(ctx, &jokeapi.Options{})
	assert.ErrorContains(t, err, "no amount provided")

	_, err = c.GetJokes(ctx, &jokeapi.Options{Amount: 0})
	assert.ErrorContains(t, err, "no amount provided")

	_, err = c.GetJokes(ctx, &jokeapi.Options{Amount: 2.5, Types: []jokeapi.JokeType{jokeapi.TypeSingle}})
	assert.ErrorContains(t, err, "must be a whole number")

	_, err = c.GetJokes(ctx, &jokeapi.Options{Amount: -1, Types: []jokeapi.JokeType{jokeapi.TypeSingle}})
	assert.ErrorContains(t, err, "must be greater than zero")

	_, err = c.GetJoke(ctx, &jokeapi.Options{BlacklistFlags: []jokeapi.Flag{"rude"}})
	assert.ErrorContains(t, err, "invalid flag specified")

	assert.Zero(t, calls.Load())
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestInjectedTransport(t *testing.T) {
	var seen *http.Request
	c := jokeapi.New(
		jokeapi.WithUserAgent("joke-service/test"),
		jokeapi.WithHTTPClient(doerFunc(func(r *http.Request) (*http.Response, error) {
			seen = r
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(`{"type":"single","category":"Pun","joke":"ok"}`)),
			}, nil
		})),
	)

	joke, err := c.GetJoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", joke.Text())

	require.NotNil(t, seen)
	assert.Equal(t, http.MethodGet, seen.Method)
	assert.Equal(t, "v2.jokeapi.dev", seen.URL.Host)
	assert.Equal(t, "/joke/Any", seen.URL.Path)
	assert.Equal(t, "application/json", seen.Header.Get("Accept"))
	assert.Equal(t, "joke-service/test", seen.Header.Get("User-Agent"))
}

func TestTransportErrors(t *testing.T) {
	t.Run("network failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		c := jokeapi.New(jokeapi.WithHTTPClient(doerFunc(func(*http.Request) (*http.Response, error) {
			return nil, boom
		})))

		_, err := c.GetJoke(context.Background(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, jokeapi.ErrValidation)
	})

	t.Run("non-json body", func(t *testing.T) {
		c := newTestClient(t, `<html>Bad Gateway</html>`, nil)

		_, err := c.GetJokes(context.Background(), &jokeapi.Options{Amount: 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
		assert.NotErrorIs(t, err, jokeapi.ErrValidation)
	})
}

func TestGetJoke_Windows1251Body(t *testing.T) {
	// "Шутка" в windows-1251
	body := append([]byte(`{"type":"single","category":"Pun","joke":"`), 0xd8, 0xf3, 0xf2, 0xea, 0xe0)
	body = append(body, []byte(`"}`)...)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=windows-1251")
		w.Write(body)
	}))
	defer srv.Close()

	joke, err := jokeapi.New(jokeapi.WithBaseURL(srv.URL)).GetJoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Шутка", joke.Text())
}

func TestGetJokes_UTF8AfterLongASCIIPrefix(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"jokes":[`)
	for i := 0; i < 15; i++ {
		b.WriteString(`{"type":"single","category":"Pun","joke":"plain ascii joke number ` + strconv.Itoa(i) + ` with some padding text"},`)
	}
	b.WriteString(`{"type":"single","category":"Pun","joke":"Grüße café"}]}`)
	body := b.String()
	require.Greater(t, strings.Index(body, "Grüße"), 1024)

	for _, contentType := range []string{"application/json", ""} {
		t.Run("content-type "+contentType, func(t *testing.T) {
			c := jokeapi.New(jokeapi.WithHTTPClient(doerFunc(func(*http.Request) (*http.Response, error) {
				header := http.Header{}
				if contentType != "" {
					header.Set("Content-Type", contentType)
				}
				return &http.Response{
					StatusCode: http.StatusOK,
					Header:     header,
					Body:       io.NopCloser(strings.NewReader(body)),
				}, nil
			})))

			jokes, err := c.GetJokes(context.Background(), &jokeapi.Options{Amount: 16})
			require.NoError(t, err)
			require.Len(t, jokes, 16)
			assert.Equal(t, "Grüße café", jokes[15].Text())
		})
	}
}

func TestGetJokes_BodyWithoutJokes(t *testing.T) {
	for _, body := range []string{`{"status":"maintenance"}`, `{}`} {
		c := newTestClient(t, body, nil)

		jokes, err := c.GetJokes(context.Background(), &jokeapi.Options{Amount: 2})
		require.Error(t, err, body)
		assert.Nil(t, jokes)
		assert.Contains(t, err.Error(), "no jokes in body")
		assert.NotErrorIs(t, err, jokeapi.ErrValidation)
	}
}

func TestGetJoke_EmptyListRejected(t *testing.T) {
	c := jokeapi.New(jokeapi.WithHTTPClient(doerFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("request must not be sent")
		return nil, nil
	})))

	_, err := c.GetJoke(context.Background(), &jokeapi.Options{Types: []jokeapi.JokeType{}})
	assert.ErrorIs(t, err, jokeapi.ErrValidation)
	assert.ErrorContains(t, err, "invalid type specified")
}

func TestTypeGuards_Nil(t *testing.T) {
	assert.False(t, jokeapi.IsSingleJoke(nil))
	assert.False(t, jokeapi.IsTwoPartJoke(nil))
}
