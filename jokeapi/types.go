package jokeapi

import "strings"

// Category категория анекдота в JokeAPI
type Category string

const (
	CategoryProgramming   Category = "Programming"
	CategoryMiscellaneous Category = "Miscellaneous"
	CategoryDark          Category = "Dark"
	CategoryPun           Category = "Pun"
	CategorySpooky        Category = "Spooky"
	CategoryChristmas     Category = "Christmas"
)

// Categories все допустимые категории
var Categories = []Category{
	CategoryProgramming,
	CategoryMiscellaneous,
	CategoryDark,
	CategoryPun,
	CategorySpooky,
	CategoryChristmas,
}

// Language двухбуквенный код языка
type Language string

const (
	LanguageCzech      Language = "cs"
	LanguageGerman     Language = "de"
	LanguageEnglish    Language = "en"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguagePortuguese Language = "pt"
)

// Languages все поддерживаемые языки
var Languages = []Language{
	LanguageCzech,
	LanguageGerman,
	LanguageEnglish,
	LanguageSpanish,
	LanguageFrench,
	LanguagePortuguese,
}

// Flag фильтр содержимого, который можно занести в чёрный список
type Flag string

const (
	FlagNSFW      Flag = "nsfw"
	FlagReligious Flag = "religious"
	FlagPolitical Flag = "political"
	FlagSexist    Flag = "sexist"
	FlagExplicit  Flag = "explicit"
)

// Flags все допустимые флаги
var Flags = []Flag{
	FlagNSFW,
	FlagReligious,
	FlagPolitical,
	FlagSexist,
	FlagExplicit,
}

// JokeType формат анекдота
type JokeType string

const (
	TypeSingle  JokeType = "single"
	TypeTwoPart JokeType = "twopart"
)

// JokeTypes все форматы анекдотов
var JokeTypes = []JokeType{TypeSingle, TypeTwoPart}

// Joke это либо SingleJoke, либо TwoPartJoke.
// Интерфейс закрыт: реализовать его вне пакета нельзя.
type Joke interface {
	// Kind возвращает тег типа, совпадающий с конкретной структурой
	Kind() JokeType
	// JokeCategory категория, как её вернул JokeAPI
	JokeCategory() Category
	// Text текст анекдота для вывода пользователю
	Text() string

	sealed()
}

// SingleJoke анекдот из одной строки
type SingleJoke struct {
	Category Category `json:"category"`
	Type     JokeType `json:"type"`
	Joke     string   `json:"joke"`
}

func (j SingleJoke) Kind() JokeType         { return TypeSingle }
func (j SingleJoke) JokeCategory() Category { return j.Category }
func (j SingleJoke) Text() string           { return j.Joke }
func (SingleJoke) sealed()                  {}

// TwoPartJoke анекдот из вопроса и ответа
type TwoPartJoke struct {
	Category Category `json:"category"`
	Type     JokeType `json:"type"`
	Setup    string   `json:"setup"`
	Delivery string   `json:"delivery"`
}

func (j TwoPartJoke) Kind() JokeType         { return TypeTwoPart }
func (j TwoPartJoke) JokeCategory() Category { return j.Category }
func (j TwoPartJoke) Text() string           { return j.Setup + "\n" + j.Delivery }
func (TwoPartJoke) sealed()                  {}

// IsSingleJoke сообщает, что j одиночный анекдот
func IsSingleJoke(j Joke) bool {
	return j != nil && j.Kind() == TypeSingle
}

// IsTwoPartJoke сообщает, что j анекдот из двух частей
func IsTwoPartJoke(j Joke) bool {
	return j != nil && j.Kind() == TypeTwoPart
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
