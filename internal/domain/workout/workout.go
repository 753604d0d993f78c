package workout

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidDay возвращается, когда значение дня не является ни названием дня недели,
// ни датой в формате YYYY-MM-DD.
var ErrInvalidDay = errors.New("invalid workout day")

// Day описывает день недели, на который запланирована тренировка.
type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
	Saturday  Day = "SATURDAY"
	Sunday    Day = "SUNDAY"
)

// dateLayout: формат календарной даты, который принимается вместо названия дня.
const dateLayout = "2006-01-02"

var weekdays = map[time.Weekday]Day{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayFromWeekday переводит time.Weekday в Day.
func DayFromWeekday(wd time.Weekday) Day {
	return weekdays[wd]
}

// ParseDay разбирает внешнее представление дня.
// Принимается название дня недели в любом регистре ("friday", "FRIDAY")
// либо календарная дата "2023-12-15", которая сводится к своему дню недели.
func ParseDay(s string) (Day, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	if value == "" {
		return "", ErrInvalidDay
	}

	if d := Day(value); d.Valid() {
		return d, nil
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return "", ErrInvalidDay
	}
	return DayFromWeekday(date.Weekday()), nil
}

// Valid сообщает, является ли значение одним из семи дней недели.
func (d Day) Valid() bool {
	for _, known := range weekdays {
		if d == known {
			return true
		}
	}
	return false
}

func (d Day) String() string {
	return string(d)
}

// Exercise описывает элемент плана тренировки. Содержимое для ядра непрозрачно
// и передаётся без изменений.
type Exercise map[string]any

// Workout представляет доменную модель тренировки.
//
// Владелец задаётся ссылкой по идентификатору (UserID), а не вложенным пользователем.
type Workout struct {
	ID          string     // Уникальный идентификатор, неизменяем после создания
	UserID      string     // Идентификатор пользователя-владельца
	Name        string     // Название тренировки
	Day         Day        // День недели
	Description string     // Свободное описание
	Plan        []Exercise // Упорядоченный план упражнений
}

// Details описывает данные для создания тренировки.
type Details struct {
	UserID      string
	Name        string
	Day         Day
	Description string
	Plan        []Exercise
}

// Edit описывает полную замену изменяемых полей тренировки.
// Владелец в правку не входит.
type Edit struct {
	Name        string
	Day         Day
	Description string
	Plan        []Exercise
}

// NewWorkout создаёт новую тренировку со свежим идентификатором.
func NewWorkout(details Details) *Workout {
	return &Workout{
		ID:          uuid.NewString(),
		UserID:      details.UserID,
		Name:        details.Name,
		Day:         details.Day,
		Description: details.Description,
		Plan:        details.Plan,
	}
}

// Replace возвращает новую тренировку с тем же id и владельцем,
// у которой все остальные поля взяты из правки.
func (w *Workout) Replace(edit Edit) *Workout {
	return &Workout{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        edit.Name,
		Day:         edit.Day,
		Description: edit.Description,
		Plan:        edit.Plan,
	}
}
