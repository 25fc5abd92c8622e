package spreadsheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
)

func TestBuildKey(t *testing.T) {
	sub := &model.Submission{Facility: "City Lab #1", Date: "2024-03-05", SerialNumber: " SN42 "}

	key, err := BuildKey(sub, map[string]bool{"Template": true})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05-SN42-CityLab1", key)
}

func TestBuildKeyDuplicate(t *testing.T) {
	sub := &model.Submission{Facility: "City Lab #1", Date: "2024-03-05", SerialNumber: "SN42"}

	_, err := BuildKey(sub, map[string]bool{"2024-03-05-SN42-CityLab1": true})
	var dup *DuplicateRecordError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "2024-03-05-SN42-CityLab1", dup.Key)
	assert.Contains(t, err.Error(), "already exists")
}

func TestBuildKeyKeepsSerialCase(t *testing.T) {
	existing := map[string]bool{"2024-03-05-sn42-CityLab1": true}
	sub := &model.Submission{Facility: "City Lab #1", Date: "2024-03-05", SerialNumber: "SN42"}

	key, err := BuildKey(sub, existing)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05-SN42-CityLab1", key)
}

func TestBuildKeyInvalidDate(t *testing.T) {
	sub := &model.Submission{Facility: "Lab", Date: "next tuesday", SerialNumber: "SN1"}

	_, err := BuildKey(sub, nil)
	var invalid *InvalidDateError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "next tuesday", invalid.Value)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "iso", value: "2024-03-05", expected: "2024-03-05"},
		{name: "padded", value: "  2024-03-05 ", expected: "2024-03-05"},
		{name: "rfc3339 keeps its zone", value: "2024-03-05T23:30:00-05:00", expected: "2024-03-05"},
		{name: "us slashes", value: "03/05/2024", expected: "2024-03-05"},
		{name: "us short", value: "3/5/2024", expected: "2024-03-05"},
		{name: "year first slashes", value: "2024/03/05", expected: "2024-03-05"},
		{name: "month name", value: "March 5, 2024", expected: "2024-03-05"},
		{name: "browser date", value: "Tue Mar 05 2024 00:00:00 GMT+0100 (Central European Standard Time)", expected: "2024-03-05"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			date, err := FormatDate(test.value)
			require.NoError(t, err)
			assert.Equal(t, test.expected, date)
		})
	}
}

func TestFormatDateInvalid(t *testing.T) {
	for _, value := range []string{"", "   ", "yesterday", "2024-13-45", "15:04"} {
		_, err := FormatDate(value)
		var invalid *InvalidDateError
		assert.Truef(t, errors.As(err, &invalid), "expected an invalid date error for '%s'", value)
	}
}

func TestSanitizeFacility(t *testing.T) {
	assert.Equal(t, "CityLab1", SanitizeFacility("City Lab #1"))
	assert.Equal(t, "StMarys", SanitizeFacility("St. Mary's"))
	assert.Equal(t, "Lb", SanitizeFacility("Läb"))
	assert.Equal(t, "", SanitizeFacility("#!?"))
}

func TestRecordKeyString(t *testing.T) {
	key := RecordKey{Date: "2024-01-02", SerialNumber: "A-1", Facility: "X"}
	assert.Equal(t, "2024-01-02-A-1-X", key.String())
}
