// Package validate оборачивает go-playground/validator и превращает ошибки
// валидации структур в единообразные человеко‑читаемые сообщения.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator"
)

// ErrInvalid — базовая ошибка для всех нарушений правил валидации.
var ErrInvalid = errors.New("validation failed")

// Error содержит список нарушений, найденных в одной структуре.
type Error struct {
	Fields []FieldError
}

// FieldError описывает одно нарушение правила для конкретного поля.
type FieldError struct {
	Field   string // Имя поля в JSON
	Tag     string // Сработавшее правило
	Message string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(msgs, ", "))
}

// Unwrap позволяет сравнивать ошибку через errors.Is(err, ErrInvalid).
func (e *Error) Unwrap() error {
	return ErrInvalid
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		// В сообщениях используем имена из json-тегов, а не имена полей Go.
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		// Ошибка возможна только при пустом имени тега или nil-функции.
		_ = instance.RegisterValidation("maxbytes", maxBytes)
	})
	return instance
}

// maxBytes ограничивает длину строки в байтах, а не в символах.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return len(field.String()) <= limit
}

// Struct проверяет структуру по тегам validate и возвращает *Error,
// если хотя бы одно правило нарушено.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.ActualTag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", fe.Field())
	case "max":
		return fmt.Sprintf("field %s must be at most %s characters long", fe.Field(), fe.Param())
	case "maxbytes":
		return fmt.Sprintf("field %s must be at most %s bytes long", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("field %s must be at least %s characters long", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("field %s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "alphanum":
		return fmt.Sprintf("field %s can contain only numbers and letters", fe.Field())
	case "uuid":
		return fmt.Sprintf("field %s can contain only uuid", fe.Field())
	default:
		return fmt.Sprintf("field %s is not a valid", fe.Field())
	}
}
