package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
)

// column is one named series of a group as it arrived on the payload.
type column struct {
	name   string
	values []interface{}
}

// validator collects every problem found while normalizing a submission.
type validator struct {
	converter *cellConverter
	errs      *multierror.Error
}

// Normalize checks a raw submission and turns it into a model.Submission. It
// reports every problem it finds in a single *ValidationError:
//   - facility, date, technician and serialNumber must be present and not blank
//   - lowerLimitDetection, precisionLevel1, precisionLevel2, accuracy and qc must be present
//   - every series in a group must be the same length as the first series of the group
//   - a group can't have more samples than there are rows for it on the worksheet
//
// Measurements are converted to numbers where possible and kept as blanks
// otherwise (see cellConverter.toValue). Normalize has no side effects.
func Normalize(raw *model.RawSubmission) (*model.Submission, error) {
	if raw == nil {
		return nil, &ValidationError{Errs: multierror.Append(nil, &FieldError{Field: "submission", Reason: "no data provided"})}
	}

	v := &validator{converter: newCellConverter()}

	sub := &model.Submission{
		Facility:     v.required("facility", raw.Facility),
		Date:         v.required("date", raw.Date),
		Technician:   v.required("technician", raw.Technician),
		SerialNumber: v.required("serialNumber", raw.SerialNumber),
		EmailTo:      strings.TrimSpace(raw.EmailTo),
		PhoneNumber:  strings.TrimSpace(raw.PhoneNumber),
	}

	if lld := raw.LowerLimitDetection; lld == nil {
		v.missing("lowerLimitDetection")
	} else {
		s := v.group("lowerLimitDetection", LowerLimitDetectionRows,
			column{"conc", lld.Conc}, column{"msc", lld.MSC})
		sub.LowerLimitDetection = model.LowerLimitDetection{Conc: s[0], MSC: s[1]}
	}

	sub.PrecisionLevel1 = v.precision("precisionLevel1", raw.PrecisionLevel1)
	sub.PrecisionLevel2 = v.precision("precisionLevel2", raw.PrecisionLevel2)

	if acc := raw.Accuracy; acc == nil {
		v.missing("accuracy")
	} else {
		s := v.group("accuracy", AccuracyRows,
			column{"sqa", acc.SQA}, column{"manual", acc.Manual},
			column{"sqaMotility", acc.SQAMotility}, column{"manualMotility", acc.ManualMotility},
			column{"sqaMorph", acc.SQAMorph}, column{"manualMorph", acc.ManualMorph})
		sub.Accuracy = model.Accuracy{
			SQA:             s[0],
			Manual:          s[1],
			SQAMotility:     s[2],
			ManualMotility:  s[3],
			SQAMorph:        s[4],
			ManualMorph:     s[5],
			MorphGradeFinal: v.confusion(acc.MorphGradeFinal),
		}
	}

	if qc := raw.QC; qc == nil {
		v.missing("qc")
	} else {
		s := v.group("qc", 0, column{"level1", qc.Level1}, column{"level2", qc.Level2})
		sub.QC = model.QC{Level1: s[0], Level2: s[1]}
	}

	if v.errs.ErrorOrNil() != nil {
		return nil, &ValidationError{Errs: v.errs}
	}

	return sub, nil
}

func (v *validator) fail(field, format string, args ...interface{}) {
	v.errs = multierror.Append(v.errs, &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (v *validator) missing(field string) {
	v.fail(field, "is required")
}

// required returns the trimmed value, recording a problem if it's blank.
func (v *validator) required(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.missing(field)
	}
	return value
}

func (v *validator) precision(name string, p *model.RawPrecision) model.Precision {
	if p == nil {
		v.missing(name)
		return model.Precision{}
	}

	s := v.group(name, PrecisionRows,
		column{"conc", p.Conc}, column{"motility", p.Motility}, column{"morph", p.Morph})
	return model.Precision{Conc: s[0], Motility: s[1], Morph: s[2]}
}

// group converts each column of a group. The first column sets the number
// of samples, every other column must match it. maxRows of 0 means the
// group has no row limit. The returned slice always has one entry per
// column, even when there were problems.
func (v *validator) group(name string, maxRows int, columns ...column) [][]model.Value {
	expected := len(columns[0].values)
	if maxRows > 0 && expected > maxRows {
		v.fail(name+"."+columns[0].name, "has %d samples, at most %d fit on the worksheet", expected, maxRows)
	}

	converted := make([][]model.Value, len(columns))
	for i, col := range columns {
		if len(col.values) != expected {
			v.fail(name+"."+col.name, "has %d entries, expected %d to match %s.%s",
				len(col.values), expected, name, columns[0].name)
		}

		values := make([]model.Value, len(col.values))
		for j, cell := range col.values {
			values[j] = v.converter.toValue(cell)
		}
		converted[i] = values
	}

	return converted
}

// confusion reads the morphology grade tally. A missing tally, or a count
// that isn't a number, is 0.
func (v *validator) confusion(c *model.RawConfusion) model.Confusion {
	if c == nil {
		return model.Confusion{}
	}

	return model.Confusion{
		TP: v.converter.toCount(c.TP),
		TN: v.converter.toCount(c.TN),
		FP: v.converter.toCount(c.FP),
		FN: v.converter.toCount(c.FN),
	}
}
