package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// CellKind — вариант значения ячейки.
type CellKind uint8

const (
	// CellEmpty — значение отсутствует (null в JSON).
	CellEmpty CellKind = iota
	// CellNumber — числовое значение.
	CellNumber
	// CellBoolean — логическое значение.
	CellBoolean
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellNumber:
		return "number"
	case CellBoolean:
		return "boolean"
	default:
		return "CellKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ErrCellValueType возвращается при разборе JSON-значения, которое не является
// числом, логическим значением или null.
var ErrCellValueType = errors.New("cell value must be a number, a boolean or null")

// CellValue — значение ячейки: ровно один из вариантов Number, Boolean или Empty.
// Нулевое значение типа — Empty, поэтому Empty, Number(0) и Boolean(false) различимы.
type CellValue struct {
	kind CellKind
	num  float64
	b    bool
}

// Empty возвращает пустое значение ячейки.
func Empty() CellValue { return CellValue{} }

// Number возвращает числовое значение ячейки.
func Number(v float64) CellValue { return CellValue{kind: CellNumber, num: v} }

// Boolean возвращает логическое значение ячейки.
func Boolean(v bool) CellValue { return CellValue{kind: CellBoolean, b: v} }

func (v CellValue) Kind() CellKind { return v.kind }

func (v CellValue) IsEmpty() bool { return v.kind == CellEmpty }

// Number возвращает число и true, если значение числовое.
func (v CellValue) Number() (float64, bool) {
	return v.num, v.kind == CellNumber
}

// Bool возвращает логическое значение и true, если значение логическое.
func (v CellValue) Bool() (bool, bool) {
	return v.b, v.kind == CellBoolean
}

// Equal сравнивает вариант и содержимое.
func (v CellValue) Equal(o CellValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case CellNumber:
		return v.num == o.num
	case CellBoolean:
		return v.b == o.b
	default:
		return true
	}
}

func (v CellValue) String() string {
	switch v.kind {
	case CellNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case CellBoolean:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// MarshalJSON кодирует значение как число, true/false или null.
func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case CellNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("models.CellValue.MarshalJSON: unsupported number %v", v.num)
		}
		return json.Marshal(v.num)
	case CellBoolean:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON разбирает число, true/false или null; остальные типы отклоняются.
func (v *CellValue) UnmarshalJSON(data []byte) error {
	const op = "models.CellValue.UnmarshalJSON"

	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Empty()
	case bytes.Equal(data, []byte("true")):
		*v = Boolean(true)
	case bytes.Equal(data, []byte("false")):
		*v = Boolean(false)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		*v = Number(f)
	default:
		return fmt.Errorf("%s: %w: got %s", op, ErrCellValueType, data)
	}
	return nil
}
