package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound — записи с таким id нет вовсе.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized — запись есть, но принадлежит другому пользователю.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrLoginTaken — логин уже занят.
	ErrLoginTaken = errors.New("login already taken")
	// ErrInvalidCredentials — неизвестный логин или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError описывает ошибки по полям; ключи — имена полей в JSON.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message — первая по алфавиту ошибка, для краткого ответа клиенту.
func (e *ValidationError) Message() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "The given data was invalid."
	}
	sort.Strings(keys)
	return e.Fields[keys[0]]
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
