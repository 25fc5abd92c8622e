package spreadsheet

import (
	"fmt"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/stats"
	"github.com/materials-commons/mcsqa/internal/store"
)

// The template worksheet has a fixed shape, so every field of a submission
// has a fixed cell. Groups of samples start at a fixed row and take one row
// per sample:
//
//   rows 3-6    |    |facility / date / technician / serial number across B:H |
//   row 12      |    |lld conc |lld msc  |
//   row 24      |    |conc     |motility |morph    |                    (precision level 1)
//   row 36      |    |conc     |motility |morph    |                    (precision level 2)
//   row 48      |sqa |manual   |sqa mot  |man mot  |sqa morph|man morph (accuracy)
//   row 71      |    |level 1  |level 2  |                               (qc)
//
// The statistics sit to the right of the accuracy block, see the cell
// constants below. Existing workbooks were built on this layout so none of
// these can move.
const (
	FacilityRow     = 3
	DateRow         = 4
	TechnicianRow   = 5
	SerialNumberRow = 6

	LowerLimitDetectionRow = 12
	PrecisionLevel1Row     = 24
	PrecisionLevel2Row     = 36
	AccuracyRow            = 48
	QCRow                  = 71
)

// Header values span columns B through H.
const (
	headerFirstColumn = 'B'
	headerLastColumn  = 'H'
)

// Rows available to each group before it runs into the next one.
const (
	LowerLimitDetectionRows = PrecisionLevel1Row - LowerLimitDetectionRow
	PrecisionRows           = PrecisionLevel2Row - PrecisionLevel1Row
	AccuracyRows            = QCRow - AccuracyRow
)

// Fixed cells.
const (
	SensitivityCell        store.Coordinate = "L46"
	SpecificityCell        store.Coordinate = "L47"
	TruePositiveCell       store.Coordinate = "L48"
	TrueNegativeCell       store.Coordinate = "L49"
	FalsePositiveCell      store.Coordinate = "L50"
	FalseNegativeCell      store.Coordinate = "L51"
	ConcentrationR2Cell    store.Coordinate = "I54"
	MotilityR2Cell         store.Coordinate = "I55"
	SensitivityPercentCell store.Coordinate = "J54"
)

// Columns of each group, in the order of the group's series.
var (
	lowerLimitDetectionColumns = []string{"B", "C"}
	precisionColumns           = []string{"B", "C", "D"}
	accuracyColumns            = []string{"A", "B", "C", "D", "E", "F"}
	qcColumns                  = []string{"B", "C"}
)

// CellWrite is a single value to put in a cell. A nil Value is an empty cell.
type CellWrite struct {
	Coordinate store.Coordinate
	Value      interface{}
}

// Cell returns the coordinate for a column and 1 based row.
func Cell(column string, row int) store.Coordinate {
	return store.Coordinate(fmt.Sprintf("%s%d", column, row))
}

// PlaceFields lays a validated submission and its statistics out on the
// template. It only produces writes, it never looks at what is already in
// the worksheet, so the same submission always gives the same list.
func PlaceFields(sub *model.Submission, derived stats.Derived) []CellWrite {
	var writes []CellWrite

	writes = appendHeader(writes, FacilityRow, sub.Facility)
	writes = appendHeader(writes, DateRow, sub.Date)
	writes = appendHeader(writes, TechnicianRow, sub.Technician)
	writes = appendHeader(writes, SerialNumberRow, sub.SerialNumber)

	lld := sub.LowerLimitDetection
	writes = appendSeries(writes, LowerLimitDetectionRow, lowerLimitDetectionColumns, lld.Conc, lld.MSC)

	p1 := sub.PrecisionLevel1
	writes = appendSeries(writes, PrecisionLevel1Row, precisionColumns, p1.Conc, p1.Motility, p1.Morph)

	p2 := sub.PrecisionLevel2
	writes = appendSeries(writes, PrecisionLevel2Row, precisionColumns, p2.Conc, p2.Motility, p2.Morph)

	acc := sub.Accuracy
	writes = appendSeries(writes, AccuracyRow, accuracyColumns,
		acc.SQA, acc.Manual, acc.SQAMotility, acc.ManualMotility, acc.SQAMorph, acc.ManualMorph)

	grade := acc.MorphGradeFinal
	writes = append(writes,
		CellWrite{TruePositiveCell, grade.TP},
		CellWrite{TrueNegativeCell, grade.TN},
		CellWrite{FalsePositiveCell, grade.FP},
		CellWrite{FalseNegativeCell, grade.FN},
		CellWrite{SensitivityCell, derived.MorphGrade.Sensitivity},
		CellWrite{SpecificityCell, derived.MorphGrade.Specificity},
	)

	writes = appendSeries(writes, QCRow, qcColumns, sub.QC.Level1, sub.QC.Level2)

	writes = append(writes,
		CellWrite{ConcentrationR2Cell, stats.FormatR2(derived.ConcentrationR2)},
		CellWrite{MotilityR2Cell, stats.FormatR2(derived.MotilityR2)},
		CellWrite{SensitivityPercentCell, derived.Sensitivity},
	)

	return writes
}

// appendHeader writes value into every cell of the header row from B to H,
// the same as setting the value of the whole (merged) range.
func appendHeader(writes []CellWrite, row int, value string) []CellWrite {
	for col := headerFirstColumn; col <= headerLastColumn; col++ {
		writes = append(writes, CellWrite{Cell(string(col), row), value})
	}
	return writes
}

// appendSeries writes a group one sample per row starting at firstRow,
// series[i] going to columns[i]. The first series sets the number of rows.
func appendSeries(writes []CellWrite, firstRow int, columns []string, series ...[]model.Value) []CellWrite {
	if len(series) == 0 {
		return writes
	}

	for i := range series[0] {
		for j, values := range series {
			v := model.Blank
			if i < len(values) {
				v = values[i]
			}
			writes = append(writes, CellWrite{Cell(columns[j], firstRow+i), v.Cell()})
		}
	}
	return writes
}
