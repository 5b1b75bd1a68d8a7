package models

import (
	"errors"
	"fmt"
)

// Lap — один зафиксированный круг секундомера.
type Lap struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`      // Подпись для отображения
	Time      float64 `json:"time"`      // Прошедшее время
	LapNumber int     `json:"lapNumber"` // Порядковый номер круга в сессии
}

// ErrLapOrder означает, что номера кругов в сессии не возрастают.
var ErrLapOrder = errors.New("lap numbers are not increasing")

// Laps — круги одной сессии записи в порядке фиксации.
type Laps []Lap

// Next возвращает новый круг с номером на единицу больше последнего.
// Для пустой сессии номер равен 1. Сам срез не изменяется.
func (l Laps) Next(id, name string, elapsed float64) Lap {
	n := 1
	if len(l) > 0 {
		n = l[len(l)-1].LapNumber + 1
	}
	return Lap{ID: id, Name: name, Time: elapsed, LapNumber: n}
}

// Validate проверяет, что номера кругов строго возрастают.
func (l Laps) Validate() error {
	for i := 1; i < len(l); i++ {
		if l[i].LapNumber <= l[i-1].LapNumber {
			return fmt.Errorf("%w: lap %q has number %d after %d", ErrLapOrder, l[i].ID, l[i].LapNumber, l[i-1].LapNumber)
		}
	}
	return nil
}
