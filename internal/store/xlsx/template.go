package xlsx

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/materials-commons/mcsqa/internal/spreadsheet"
	"github.com/materials-commons/mcsqa/internal/store"
)

type label struct {
	coord store.Coordinate
	text  string
}

// templateLabels sit in the cells around the ones a record fills in. Group
// titles go two rows above the first sample row, column names one row above.
var templateLabels = []label{
	{spreadsheet.Cell("A", spreadsheet.FacilityRow), "Facility"},
	{spreadsheet.Cell("A", spreadsheet.DateRow), "Date"},
	{spreadsheet.Cell("A", spreadsheet.TechnicianRow), "Technician"},
	{spreadsheet.Cell("A", spreadsheet.SerialNumberRow), "Serial Number"},

	{spreadsheet.Cell("A", spreadsheet.LowerLimitDetectionRow-2), "Lower Limit Detection"},
	{spreadsheet.Cell("B", spreadsheet.LowerLimitDetectionRow-1), "Conc"},
	{spreadsheet.Cell("C", spreadsheet.LowerLimitDetectionRow-1), "MSC"},

	{spreadsheet.Cell("A", spreadsheet.PrecisionLevel1Row-2), "Precision Level 1"},
	{spreadsheet.Cell("B", spreadsheet.PrecisionLevel1Row-1), "Conc"},
	{spreadsheet.Cell("C", spreadsheet.PrecisionLevel1Row-1), "Motility"},
	{spreadsheet.Cell("D", spreadsheet.PrecisionLevel1Row-1), "Morph"},

	{spreadsheet.Cell("A", spreadsheet.PrecisionLevel2Row-2), "Precision Level 2"},
	{spreadsheet.Cell("B", spreadsheet.PrecisionLevel2Row-1), "Conc"},
	{spreadsheet.Cell("C", spreadsheet.PrecisionLevel2Row-1), "Motility"},
	{spreadsheet.Cell("D", spreadsheet.PrecisionLevel2Row-1), "Morph"},

	{spreadsheet.Cell("A", spreadsheet.AccuracyRow-2), "Accuracy"},
	{spreadsheet.Cell("A", spreadsheet.AccuracyRow-1), "SQA"},
	{spreadsheet.Cell("B", spreadsheet.AccuracyRow-1), "Manual"},
	{spreadsheet.Cell("C", spreadsheet.AccuracyRow-1), "SQA Motility"},
	{spreadsheet.Cell("D", spreadsheet.AccuracyRow-1), "Manual Motility"},
	{spreadsheet.Cell("E", spreadsheet.AccuracyRow-1), "SQA Morph"},
	{spreadsheet.Cell("F", spreadsheet.AccuracyRow-1), "Manual Morph"},

	{"K46", "Sensitivity %"},
	{"K47", "Specificity %"},
	{"K48", "TP"},
	{"K49", "TN"},
	{"K50", "FP"},
	{"K51", "FN"},
	{"H54", "Concentration"},
	{"H55", "Motility"},

	{spreadsheet.Cell("A", spreadsheet.QCRow-2), "Quality Control"},
	{spreadsheet.Cell("B", spreadsheet.QCRow-1), "Level 1"},
	{spreadsheet.Cell("C", spreadsheet.QCRow-1), "Level 2"},
}

var headerRows = []int{
	spreadsheet.FacilityRow,
	spreadsheet.DateRow,
	spreadsheet.TechnicianRow,
	spreadsheet.SerialNumberRow,
}

// CreateTemplate writes a new workbook at path holding a single blank
// template worksheet called sheet. The header values are merged across B:H.
func CreateTemplate(path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrapf(err, "naming template worksheet %s", sheet)
	}

	for _, l := range templateLabels {
		if err := f.SetCellValue(sheet, string(l.coord), l.text); err != nil {
			return errors.Wrapf(err, "labelling %s", l.coord)
		}
	}

	for _, row := range headerRows {
		if err := f.MergeCell(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("H%d", row)); err != nil {
			return errors.Wrapf(err, "merging header row %d", row)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving template %s", path)
	}
	return nil
}
