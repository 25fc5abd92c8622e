package spreadsheet

/*
 * keywords contains the cell values that the form or a hand written payload
 * uses to say "no measurement". For example a technician who could not read
 * a slide enters:
 *    n/a
 * That entry is kept in its row as a blank cell rather than treated as bad input.
 */

import (
	"fmt"
	"strings"
)

// Default set of cell values that are treated as a blank cell
var BlankCellKeywords = map[string]bool{
	"n/a":   true,
	"na":    true,
	"blank": true,
	"-":     true,
}

// AddBlankKeyword adds a new keyword to the BlankCellKeywords map.
func AddBlankKeyword(keyword string) {
	BlankCellKeywords[strings.ToLower(strings.TrimSpace(keyword))] = true
}

// SetBlankKeywords overrides the current BlankCellKeywords with the
// new set of keywords. It clears the current set of keywords before
// setting the new set.
func SetBlankKeywords(keywords ...string) {
	// Clear BlankCellKeywords
	BlankCellKeywords = make(map[string]bool)

	// Add new set of keywords
	for _, keyword := range keywords {
		AddBlankKeyword(keyword)
	}
}

// ValidateKeywords checks that none of the blank keywords could also be
// read as a number, otherwise a real measurement would silently be
// dropped from the statistics.
func ValidateKeywords() error {
	c := &cellConverter{}
	for keyword := range BlankCellKeywords {
		if keyword == "" {
			return fmt.Errorf("blank keywords can't contain an empty keyword")
		}
		if c.stringToValue(keyword).Valid {
			return fmt.Errorf("blank keyword '%s' is a number", keyword)
		}
	}
	return nil
}
