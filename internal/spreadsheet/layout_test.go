package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/stats"
	"github.com/materials-commons/mcsqa/internal/store"
)

func layoutSubmission() *model.Submission {
	return &model.Submission{
		Facility:     "Lab",
		Date:         "2024-03-05",
		Technician:   "Tech",
		SerialNumber: "SN1",
		LowerLimitDetection: model.LowerLimitDetection{
			Conc: model.Numbers(1, 2),
			MSC:  []model.Value{model.Number(3), model.Blank},
		},
		PrecisionLevel1: model.Precision{
			Conc:     model.Numbers(10),
			Motility: model.Numbers(11),
			Morph:    model.Numbers(12),
		},
		Accuracy: model.Accuracy{
			SQA:             model.Numbers(1, 5, 7),
			Manual:          model.Numbers(2, 6, 8),
			SQAMotility:     model.Numbers(30, 40, 50),
			ManualMotility:  model.Numbers(31, 41, 51),
			SQAMorph:        model.Numbers(3, 4, 5),
			ManualMorph:     model.Numbers(3, 4, 6),
			MorphGradeFinal: model.Confusion{TP: 4, TN: 3, FP: 1, FN: 0},
		},
		QC: model.QC{
			Level1: model.Numbers(9),
			Level2: model.Numbers(19),
		},
	}
}

func writesByCell(writes []CellWrite) map[store.Coordinate]interface{} {
	cells := make(map[store.Coordinate]interface{}, len(writes))
	for _, w := range writes {
		cells[w.Coordinate] = w.Value
	}
	return cells
}

func TestPlaceFields(t *testing.T) {
	sub := layoutSubmission()
	derived := stats.Derive(sub)
	writes := PlaceFields(sub, derived)
	cells := writesByCell(writes)

	// Every coordinate is written once.
	require.Len(t, cells, len(writes))

	for _, col := range []string{"B", "C", "D", "E", "F", "G", "H"} {
		assert.Equal(t, "Lab", cells[Cell(col, FacilityRow)])
		assert.Equal(t, "2024-03-05", cells[Cell(col, DateRow)])
		assert.Equal(t, "Tech", cells[Cell(col, TechnicianRow)])
		assert.Equal(t, "SN1", cells[Cell(col, SerialNumberRow)])
	}

	assert.Equal(t, 1.0, cells["B12"])
	assert.Equal(t, 2.0, cells["B13"])
	assert.Equal(t, 3.0, cells["C12"])

	v, ok := cells["C13"]
	assert.True(t, ok, "a blank is written as an empty cell")
	assert.Nil(t, v)

	assert.Equal(t, 10.0, cells["B24"])
	assert.Equal(t, 12.0, cells["D24"])

	assert.Equal(t, 1.0, cells["A48"])
	assert.Equal(t, 8.0, cells["B50"])
	assert.Equal(t, 51.0, cells["D50"])
	assert.Equal(t, 6.0, cells["F50"])

	assert.Equal(t, 9.0, cells["B71"])
	assert.Equal(t, 19.0, cells["C71"])

	assert.Equal(t, 4.0, cells[TruePositiveCell])
	assert.Equal(t, 3.0, cells[TrueNegativeCell])
	assert.Equal(t, 1.0, cells[FalsePositiveCell])
	assert.Equal(t, 0.0, cells[FalseNegativeCell])
	assert.Equal(t, 100.0, cells[SensitivityCell])
	assert.Equal(t, 75.0, cells[SpecificityCell])

	assert.Equal(t, stats.FormatR2(derived.ConcentrationR2), cells[ConcentrationR2Cell])
	assert.Equal(t, stats.FormatR2(derived.MotilityR2), cells[MotilityR2Cell])
	assert.Equal(t, "33.3%", cells[SensitivityPercentCell])
}

func TestPlaceFieldsEmptyGroups(t *testing.T) {
	sub := layoutSubmission()
	writes := PlaceFields(sub, stats.Derive(sub))
	cells := writesByCell(writes)

	// Precision level 2 has no samples so nothing is written from row 36.
	for _, col := range precisionColumns {
		_, ok := cells[Cell(col, PrecisionLevel2Row)]
		assert.False(t, ok)
	}
}

func TestPlaceFieldsCount(t *testing.T) {
	sub := layoutSubmission()
	writes := PlaceFields(sub, stats.Derive(sub))

	header := 4 * 7
	groups := 2*2 + 1*3 + 3*6 + 1*2
	fixed := 9
	assert.Len(t, writes, header+groups+fixed)
}

func TestPlaceFieldsDeterministic(t *testing.T) {
	sub := layoutSubmission()
	derived := stats.Derive(sub)
	assert.Equal(t, PlaceFields(sub, derived), PlaceFields(sub, derived))
}

func TestGroupsFitBetweenRows(t *testing.T) {
	assert.Equal(t, 12, LowerLimitDetectionRows)
	assert.Equal(t, 12, PrecisionRows)
	assert.Equal(t, 23, AccuracyRows)
	assert.Equal(t, store.Coordinate("AA10"), Cell("AA", 10))
}
