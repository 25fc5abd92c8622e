package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
)

func TestSetBlankKeywords(t *testing.T) {
	saved := BlankCellKeywords
	defer func() { BlankCellKeywords = saved }()

	SetBlankKeywords(" Missing ", "ND")
	assert.Len(t, BlankCellKeywords, 2)
	assert.True(t, BlankCellKeywords["missing"])
	assert.True(t, BlankCellKeywords["nd"])

	c := newCellConverter()
	assert.Equal(t, model.Blank, c.toValue("MISSING"))
	assert.Equal(t, model.Blank, c.toValue("n/a"), "still blank since it isn't a number")
	assert.NoError(t, ValidateKeywords())
}

func TestValidateKeywords(t *testing.T) {
	saved := BlankCellKeywords
	defer func() { BlankCellKeywords = saved }()

	assert.NoError(t, ValidateKeywords())

	SetBlankKeywords("n/a", "")
	assert.Error(t, ValidateKeywords())

	SetBlankKeywords("1e3")
	assert.Error(t, ValidateKeywords())
}

func TestToCount(t *testing.T) {
	c := newCellConverter()
	assert.Equal(t, 3.0, c.toCount("3"))
	assert.Equal(t, 0.0, c.toCount("n/a"))
	assert.Equal(t, 0.0, c.toCount(nil))
	assert.Equal(t, 2.5, c.toCount(2.5))
}
