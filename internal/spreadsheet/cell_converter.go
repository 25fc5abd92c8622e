package spreadsheet

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
)

type cellConverter struct {
	// blankKeywords are cell values that are treated as a blank cell,
	// compared lower case after trimming.
	blankKeywords map[string]bool
}

func newCellConverter() *cellConverter {
	return &cellConverter{blankKeywords: BlankCellKeywords}
}

// toValue will take a measurement as it came in on the payload and turn it into a
// model.Value. The entry form sends everything as strings, while payloads written
// by hand or by other tools send numbers. Anything that looks like a number becomes
// one. Anything else, including an empty cell, a "n/a" keyword, a boolean or a
// number that isn't finite, becomes a blank. A blank is kept in its position so
// the cell is still written (as empty) but it takes no part in the statistics.
func (c *cellConverter) toValue(cell interface{}) model.Value {
	switch v := cell.(type) {
	case nil:
		return model.Blank
	case bool:
		// cast would happily turn true into 1
		return model.Blank
	case string:
		return c.stringToValue(v)
	case json.Number:
		return c.stringToValue(v.String())
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return model.Blank
		}
		return finite(f)
	}
}

// stringToValue handles the string case of toValue. The string is trimmed
// before being checked against the blank keywords and parsed.
func (c *cellConverter) stringToValue(cell string) model.Value {
	cell = strings.TrimSpace(cell)
	if c.isBlank(cell) {
		return model.Blank
	}

	f, err := cast.ToFloat64E(cell)
	if err != nil {
		return model.Blank
	}
	return finite(f)
}

// isBlank returns true if the trimmed cell is "", or if the lower case value
// of the cell is one of the blank keywords.
func (c *cellConverter) isBlank(cell string) bool {
	if cell == "" {
		return true
	}

	return c.blankKeywords[strings.ToLower(cell)]
}

// toCount converts one of the confusion tally counts. Unlike measurements a
// count that can't be read is 0, not blank.
func (c *cellConverter) toCount(cell interface{}) float64 {
	return c.toValue(cell).OrZero()
}

// finite rejects NaN and the infinities, which ParseFloat accepts
// as "NaN" and "Inf".
func finite(f float64) model.Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return model.Blank
	}
	return model.Number(f)
}
