package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument - отсутствует обязательное поле или неизвестный подтип.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataUnavailable - хранилище не удалось наполнить данными.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrInvalidDataset - пачка данных не разбирается или нарушает инварианты.
	// Такие сообщения инжеста не ретраятся.
	ErrInvalidDataset = errors.New("dataset validation failed")
)

// ArgumentError - ошибка аргумента инструмента с именем поля.
type ArgumentError struct {
	Field  string
	Reason string
}

// MissingField - обязательное поле не передано.
func MissingField(field string) *ArgumentError {
	return &ArgumentError{Field: field, Reason: "is required"}
}

// InvalidField - значение поля недопустимо.
func InvalidField(field, format string, args ...any) *ArgumentError {
	return &ArgumentError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Field, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }
