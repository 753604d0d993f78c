package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Logger описывает минимальный интерфейс структурированного логгера
// для компонентов, которые пишут в лог вне HTTP-запроса
// (публикация событий, OAuth-провайдер).
type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type stdLogger struct {
	component string
}

// Default возвращает логгер на базе стандартного log.Printf.
func Default() Logger {
	return &stdLogger{}
}

// Named возвращает логгер, добавляющий component=<name> к каждой записи.
func Named(component string) Logger {
	return &stdLogger{component: component}
}

func (l *stdLogger) Info(msg string, fields map[string]any) {
	log.Printf("INFO: %s%s", msg, l.format(fields))
}

func (l *stdLogger) Error(msg string, fields map[string]any) {
	log.Printf("ERROR: %s%s", msg, l.format(fields))
}

// format выводит поля в виде key=value в отсортированном порядке.
func (l *stdLogger) format(fields map[string]any) string {
	if len(fields) == 0 && l.component == "" {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	if l.component != "" {
		b.WriteString(" component=")
		b.WriteString(l.component)
	}
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

type nopLogger struct{}

// Nop возвращает логгер, который ничего не пишет. Используется в тестах.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
