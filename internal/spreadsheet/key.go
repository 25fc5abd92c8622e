package spreadsheet

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
)

// RecordKey identifies a record in the store. Its string form is the name
// of the record's region: {date}-{serialNumber}-{facility}.
type RecordKey struct {
	Date         string
	SerialNumber string
	Facility     string
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%s-%s-%s", k.Date, k.SerialNumber, k.Facility)
}

// NewRecordKey builds the key parts from a submission. The date is
// reformatted as YYYY-MM-DD, the serial number is trimmed but otherwise
// left alone (case and inner characters matter), and the facility is
// reduced to its letters and digits.
func NewRecordKey(sub *model.Submission) (RecordKey, error) {
	date, err := FormatDate(sub.Date)
	if err != nil {
		return RecordKey{}, err
	}

	return RecordKey{
		Date:         date,
		SerialNumber: strings.TrimSpace(sub.SerialNumber),
		Facility:     SanitizeFacility(sub.Facility),
	}, nil
}

// BuildKey returns the region name for a submission, failing with a
// *DuplicateRecordError if that name is already in existing.
//
// Checking existing and then creating the region are two separate calls to
// the store. Another writer can create the same name in between, nothing
// here prevents that.
func BuildKey(sub *model.Submission, existing map[string]bool) (string, error) {
	key, err := NewRecordKey(sub)
	if err != nil {
		return "", err
	}

	name := key.String()
	if existing[name] {
		return "", &DuplicateRecordError{Key: name}
	}

	return name, nil
}

// SanitizeFacility strips every character that isn't an ASCII letter or digit.
func SanitizeFacility(facility string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, facility)
}

// Date layouts tried after the ones cast knows about. These are the forms
// people type by hand and the form's own date picker output.
var extraDateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"Mon Jan 02 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// jsDateSuffix matches the time zone name a browser appends to a date, as in
// "Tue Mar 05 2024 00:00:00 GMT+0100 (Central European Standard Time)".
var jsDateSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// FormatDate reads a calendar date in any of the accepted forms and returns
// it as YYYY-MM-DD. A date with a time zone is formatted in that zone, not
// converted to UTC first, so "2024-03-05T23:30:00-05:00" stays 2024-03-05.
func FormatDate(value string) (string, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", &InvalidDateError{Value: value}
	}

	if t, err := cast.ToTimeInDefaultLocationE(s, time.UTC); err == nil && t.Year() > 0 {
		return t.Format("2006-01-02"), nil
	}

	s = jsDateSuffix.ReplaceAllString(s, "")
	for _, layout := range extraDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", &InvalidDateError{Value: value}
}
