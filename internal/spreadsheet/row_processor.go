package spreadsheet

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/stats"
	"github.com/materials-commons/mcsqa/internal/store"
)

// QCRows is how far down the worksheet ReadBack looks for QC samples when
// it has to find the number of samples itself. QC is the last group so,
// unlike the others, it has no natural limit.
const QCRows = 30

// Record is a record read back from the store.
type Record struct {
	Name       string
	Submission *model.Submission

	// The statistics as written on the worksheet.
	ConcentrationR2    string
	MotilityR2         string
	SensitivityPercent string
	MorphGrade         stats.Confusion
}

// rowProcessor reads the rows of one record region.
type rowProcessor struct {
	ctx    context.Context
	reader store.Reader
	region store.Region

	// converter turns the text of a cell back into a measurement.
	converter *cellConverter
}

func newRowProcessor(ctx context.Context, reader store.Reader, region store.Region) *rowProcessor {
	return &rowProcessor{
		ctx:       ctx,
		reader:    reader,
		region:    region,
		converter: newCellConverter(),
	}
}

// ReadBack reads a record using the same coordinates PlaceFields writes to.
// When counts is nil the number of samples in each group is found by
// reading every row available to the group and dropping trailing rows where
// every cell is empty, which means a blank last sample can't be told apart
// from no sample. Pass the counts from the original submission to get an
// exact copy.
func ReadBack(ctx context.Context, reader store.Reader, region store.Region, counts *model.Counts) (*Record, error) {
	r := newRowProcessor(ctx, reader, region)

	limits := model.Counts{
		LowerLimitDetection: LowerLimitDetectionRows,
		PrecisionLevel1:     PrecisionRows,
		PrecisionLevel2:     PrecisionRows,
		Accuracy:            AccuracyRows,
		QC:                  QCRows,
	}
	exact := counts != nil
	if exact {
		limits = *counts
	}

	sub := &model.Submission{}
	var err error

	if sub.Facility, err = r.text(Cell("B", FacilityRow)); err != nil {
		return nil, err
	}
	if sub.Date, err = r.text(Cell("B", DateRow)); err != nil {
		return nil, err
	}
	if sub.Technician, err = r.text(Cell("B", TechnicianRow)); err != nil {
		return nil, err
	}
	if sub.SerialNumber, err = r.text(Cell("B", SerialNumberRow)); err != nil {
		return nil, err
	}

	lld, err := r.processGroup(LowerLimitDetectionRow, limits.LowerLimitDetection, exact, lowerLimitDetectionColumns)
	if err != nil {
		return nil, err
	}
	sub.LowerLimitDetection = model.LowerLimitDetection{Conc: lld[0], MSC: lld[1]}

	p1, err := r.processGroup(PrecisionLevel1Row, limits.PrecisionLevel1, exact, precisionColumns)
	if err != nil {
		return nil, err
	}
	sub.PrecisionLevel1 = model.Precision{Conc: p1[0], Motility: p1[1], Morph: p1[2]}

	p2, err := r.processGroup(PrecisionLevel2Row, limits.PrecisionLevel2, exact, precisionColumns)
	if err != nil {
		return nil, err
	}
	sub.PrecisionLevel2 = model.Precision{Conc: p2[0], Motility: p2[1], Morph: p2[2]}

	acc, err := r.processGroup(AccuracyRow, limits.Accuracy, exact, accuracyColumns)
	if err != nil {
		return nil, err
	}
	sub.Accuracy = model.Accuracy{
		SQA:            acc[0],
		Manual:         acc[1],
		SQAMotility:    acc[2],
		ManualMotility: acc[3],
		SQAMorph:       acc[4],
		ManualMorph:    acc[5],
	}

	tally, err := r.numbers(TruePositiveCell, TrueNegativeCell, FalsePositiveCell, FalseNegativeCell)
	if err != nil {
		return nil, err
	}
	sub.Accuracy.MorphGradeFinal = model.Confusion{TP: tally[0], TN: tally[1], FP: tally[2], FN: tally[3]}

	qc, err := r.processGroup(QCRow, limits.QC, exact, qcColumns)
	if err != nil {
		return nil, err
	}
	sub.QC = model.QC{Level1: qc[0], Level2: qc[1]}

	record := &Record{Name: region.Name, Submission: sub}

	grade, err := r.numbers(SensitivityCell, SpecificityCell)
	if err != nil {
		return nil, err
	}
	record.MorphGrade = stats.Confusion{Sensitivity: grade[0], Specificity: grade[1]}

	if record.ConcentrationR2, err = r.text(ConcentrationR2Cell); err != nil {
		return nil, err
	}
	if record.MotilityR2, err = r.text(MotilityR2Cell); err != nil {
		return nil, err
	}
	if record.SensitivityPercent, err = r.text(SensitivityPercentCell); err != nil {
		return nil, err
	}

	return record, nil
}

// processGroup reads rows rows of a group starting at firstRow. The
// result has one series per column. When exact is false trailing rows with
// nothing in any column are dropped.
func (r *rowProcessor) processGroup(firstRow, rows int, exact bool, columns []string) ([][]model.Value, error) {
	series := make([][]model.Value, len(columns))
	for j := range series {
		series[j] = make([]model.Value, 0, rows)
	}
	lastUsed := -1

	for i := 0; i < rows; i++ {
		for j, column := range columns {
			cell, err := r.text(Cell(column, firstRow+i))
			if err != nil {
				return nil, err
			}
			if cell != "" {
				lastUsed = i
			}
			series[j] = append(series[j], r.converter.stringToValue(cell))
		}
	}

	if !exact {
		for j := range series {
			series[j] = series[j][:lastUsed+1]
		}
	}

	return series, nil
}

func (r *rowProcessor) text(coord store.Coordinate) (string, error) {
	cell, err := r.reader.ReadCell(r.ctx, r.region, coord)
	if err != nil {
		return "", errors.Wrapf(err, "reading record %s cell %s", r.region.Name, coord)
	}
	return strings.TrimSpace(cell), nil
}

// numbers reads cells that always hold a number. An empty cell is 0.
func (r *rowProcessor) numbers(coords ...store.Coordinate) ([]float64, error) {
	values := make([]float64, 0, len(coords))
	for _, coord := range coords {
		cell, err := r.text(coord)
		if err != nil {
			return nil, err
		}
		if cell == "" {
			values = append(values, 0)
			continue
		}
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "record %s cell %s with value '%s' is not a number", r.region.Name, coord, cell)
		}
		values = append(values, f)
	}
	return values, nil
}
