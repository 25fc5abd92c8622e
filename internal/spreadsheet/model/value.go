package model

import "strconv"

// Value is a single measurement cell. A Value that could not be read as a
// number is blank (Valid is false). A blank is not the same thing as a
// measured zero: blanks are skipped by the statistics and written back as
// empty cells, while a zero takes part in every calculation.
type Value struct {
	Number float64
	Valid  bool
}

// Blank is the explicit empty measurement.
var Blank = Value{}

func Number(f float64) Value {
	return Value{Number: f, Valid: true}
}

// Cell returns the value to write into a cell, nil for a blank.
func (v Value) Cell() interface{} {
	if !v.Valid {
		return nil
	}
	return v.Number
}

// OrZero returns the number, or 0 for a blank.
func (v Value) OrZero() float64 {
	if !v.Valid {
		return 0
	}
	return v.Number
}

func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

// Numbers is a convenience for building a measurement series in code.
func Numbers(fs ...float64) []Value {
	values := make([]Value, 0, len(fs))
	for _, f := range fs {
		values = append(values, Number(f))
	}
	return values
}
