// Package stats computes the acceptance statistics written alongside an SQA
// study: the squared correlation between the analyser and the manual
// reference, the low-count sensitivity of the analyser, and the
// sensitivity/specificity of the final morphology grade.
//
// All functions are pure and degrade to a neutral result (0 or "N/A") on
// input they cannot use rather than returning an error.
package stats

import (
	"fmt"
	"math"
	"strconv"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
)

// ReferenceCutoff is the concentration below which an SQA reading counts as
// a positive (low) result when computing SensitivityPercent.
const ReferenceCutoff = 4.0

// NotApplicable is returned by SensitivityPercent when there is no positive
// population to score.
const NotApplicable = "N/A"

// CorrelationSquared returns r² for the pairs (xs[i], ys[i]). A pair is
// dropped when either side is blank, including when one series is shorter
// than the other. Fewer than two usable pairs, or a series with no variance,
// gives 0.
func CorrelationSquared(xs, ys []model.Value) float64 {
	var n, sumX, sumY, sumXY, sumX2, sumY2 float64

	for i := 0; i < len(xs) && i < len(ys); i++ {
		if !xs[i].Valid || !ys[i].Valid {
			continue
		}
		x, y := xs[i].Number, ys[i].Number
		n++
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
		sumY2 += y * y
	}

	if n < 2 {
		return 0
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return 0
	}

	r := numerator / denominator
	r2 := r * r
	// Rounding can push a perfect fit a hair over 1.
	if r2 > 1 {
		return 1
	}
	return r2
}

// SensitivityPercent scores how many of the usable values fall below cutoff,
// as a percentage formatted to one decimal place ("75.0%"). It returns
// NotApplicable when there are no usable values or when none of them are
// below the cutoff.
func SensitivityPercent(values []model.Value, cutoff float64) string {
	var positives, negatives int
	for _, v := range values {
		if !v.Valid {
			continue
		}
		if v.Number < cutoff {
			positives++
		} else {
			negatives++
		}
	}

	if positives == 0 {
		return NotApplicable
	}

	percent := float64(positives) / float64(positives+negatives) * 100
	return strconv.FormatFloat(percent, 'f', 1, 64) + "%"
}

// Confusion is the sensitivity and specificity, in percent, derived from
// a confusion tally.
type Confusion struct {
	Sensitivity float64
	Specificity float64
}

// ConfusionStats computes sensitivity tp/(tp+fn) and specificity tn/(fp+tn)
// as percentages. A ratio with a zero denominator is 0.
func ConfusionStats(tp, tn, fp, fn float64) Confusion {
	var c Confusion
	if tp+fn != 0 {
		c.Sensitivity = tp / (tp + fn) * 100
	}
	if fp+tn != 0 {
		c.Specificity = tn / (fp + tn) * 100
	}
	return c
}

// Derived holds every statistic written to a record. None of it is ever
// read back as input.
type Derived struct {
	ConcentrationR2 float64
	MotilityR2      float64
	Sensitivity     string
	MorphGrade      Confusion
}

// Derive computes the statistics for a submission. Concentration and
// motility correlations compare the manual reference (x) against the
// analyser (y).
func Derive(sub *model.Submission) Derived {
	acc := sub.Accuracy
	grade := acc.MorphGradeFinal
	return Derived{
		ConcentrationR2: CorrelationSquared(acc.Manual, acc.SQA),
		MotilityR2:      CorrelationSquared(acc.ManualMotility, acc.SQAMotility),
		Sensitivity:     SensitivityPercent(acc.SQA, ReferenceCutoff),
		MorphGrade:      ConfusionStats(grade.TP, grade.TN, grade.FP, grade.FN),
	}
}

// FormatR2 renders r² the way it appears on the worksheet, "R² = 0.9876".
func FormatR2(r2 float64) string {
	return fmt.Sprintf("R² = %.4f", r2)
}
