package jokeapi

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Options параметры запроса к JokeAPI. Нулевое значение валидно для GetJoke.
// nil-список считается не заданным; пустой, но не nil список отклоняется.
type Options struct {
	// Categories объединяются через запятую в сегмент пути; пусто = "Any"
	Categories []Category `validate:"omitempty,someof=Programming Miscellaneous Dark Pun Spooky Christmas"`
	// Language по умолчанию английский
	Language Language
	// BlacklistFlags исключают анекдоты с этими флагами
	BlacklistFlags []Flag `validate:"omitempty,someof=nsfw religious political sexist explicit"`
	// Types по умолчанию single и twopart
	Types []JokeType `validate:"omitempty,someof=single twopart"`
	// SearchString передаётся как contains
	SearchString string
	// IDRange верхняя граница диапазона id, всегда 0-IDRange; 0 = без ограничения.
	// Отрицательное значение отклоняется, в JokeAPI не уходит.
	IDRange int `validate:"gte=0"`
	// Amount только для GetJokes. float64, чтобы отличать дробные значения.
	Amount float64
}

// DefaultLanguage язык, если Options.Language пуст
const DefaultLanguage = LanguageEnglish

var defaultTypes = []JokeType{TypeSingle, TypeTwoPart}

// DefaultTypes форматы, если Options.Types равен nil. Возвращает копию.
func DefaultTypes() []JokeType {
	return slices.Clone(defaultTypes)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("someof", someOf); err != nil {
		panic(err)
	}
	return v
}

// someOf пропускает список, если хотя бы один элемент входит в допустимое множество.
// Остальные элементы уходят в JokeAPI как есть.
func someOf(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	allowed := strings.Fields(fl.Param())
	for i := 0; i < field.Len(); i++ {
		if slices.Contains(allowed, field.Index(i).String()) {
			return true
		}
	}
	return false
}

// withDefaults возвращает копию opts с заполненными значениями по умолчанию
func withDefaults(opts *Options) Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.Types == nil {
		o.Types = DefaultTypes()
	}
	return o
}

// Порядок проверки полей и тексты ошибок
var fieldMessages = []struct {
	field   string
	name    string
	message string
}{
	{"Types", "type", "invalid type specified"},
	{"Categories", "categories", "invalid category specified"},
	{"BlacklistFlags", "blacklistFlags", "invalid flag specified"},
	{"IDRange", "idRange", "idRange must not be negative"},
}

func validateLists(o Options) error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	for _, fm := range fieldMessages {
		for _, ve := range valErrs {
			if ve.Field() == fm.field {
				return invalid(fm.name, fm.message)
			}
		}
	}
	ve := valErrs[0]
	return invalid(ve.Field(), "invalid "+ve.Field())
}

// prepareOne проверяет параметры для одиночного запроса
func prepareOne(opts *Options) (Options, error) {
	if opts != nil && opts.Amount != 0 {
		return Options{}, invalid("amount", "amount should not be provided, use GetJokes instead")
	}
	o := withDefaults(opts)
	if err := validateLists(o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// prepareMany проверяет параметры для пакетного запроса
func prepareMany(opts *Options) (Options, error) {
	if opts == nil || opts.Amount == 0 {
		return Options{}, invalid("amount", "no amount provided, use GetJoke instead")
	}
	if err := validateAmount(opts.Amount); err != nil {
		return Options{}, err
	}
	o := withDefaults(opts)
	if err := validateLists(o); err != nil {
		return Options{}, err
	}
	return o, nil
}

func validateAmount(amount float64) error {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		return invalid("amount", "amount must be a number")
	case amount != math.Trunc(amount):
		return invalid("amount", "amount must be a whole number")
	case amount < 0:
		return invalid("amount", "amount must be greater than zero")
	}
	return nil
}
