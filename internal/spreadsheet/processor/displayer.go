package processor

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/materials-commons/mcsqa/internal/spreadsheet"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/stats"
)

// Displayer prints submissions and records as text tables.
type Displayer struct {
	out io.Writer
}

func NewDisplayer(out io.Writer) *Displayer {
	return &Displayer{out: out}
}

// Receipt prints the outcome of a submission.
func (d *Displayer) Receipt(r *Receipt) {
	switch r.State {
	case Committed:
		fmt.Fprintf(d.out, "Created record %s\n", r.Key)
		d.printDerived(r.Derived)
	case RolledBack:
		fmt.Fprintf(d.out, "Record %s was rolled back\n", r.Key)
		if r.RollbackErr != nil {
			fmt.Fprintf(d.out, "%sRollback failed, remove region '%s' by hand: %s\n", spaces(2), r.Region.Name, r.RollbackErr)
		}
	default:
		fmt.Fprintf(d.out, "No record created (stopped at %s)\n", r.State)
	}
}

// Record prints a record read back from the store, one table per group.
func (d *Displayer) Record(record *spreadsheet.Record) {
	sub := record.Submission
	fmt.Fprintf(d.out, "Record %s\n", record.Name)
	fmt.Fprintf(d.out, "%sFacility:      %s\n", spaces(2), sub.Facility)
	fmt.Fprintf(d.out, "%sDate:          %s\n", spaces(2), sub.Date)
	fmt.Fprintf(d.out, "%sTechnician:    %s\n", spaces(2), sub.Technician)
	fmt.Fprintf(d.out, "%sSerial Number: %s\n", spaces(2), sub.SerialNumber)

	lld := sub.LowerLimitDetection
	d.printGroup("Lower Limit Detection", []string{"Conc", "MSC"}, lld.Conc, lld.MSC)

	p1 := sub.PrecisionLevel1
	d.printGroup("Precision Level 1", []string{"Conc", "Motility", "Morph"}, p1.Conc, p1.Motility, p1.Morph)

	p2 := sub.PrecisionLevel2
	d.printGroup("Precision Level 2", []string{"Conc", "Motility", "Morph"}, p2.Conc, p2.Motility, p2.Morph)

	acc := sub.Accuracy
	d.printGroup("Accuracy",
		[]string{"SQA", "Manual", "SQA Motility", "Manual Motility", "SQA Morph", "Manual Morph"},
		acc.SQA, acc.Manual, acc.SQAMotility, acc.ManualMotility, acc.SQAMorph, acc.ManualMorph)

	d.printGroup("Quality Control", []string{"Level 1", "Level 2"}, sub.QC.Level1, sub.QC.Level2)

	grade := acc.MorphGradeFinal
	fmt.Fprintf(d.out, "Morph Grade Final: TP %v, TN %v, FP %v, FN %v\n", grade.TP, grade.TN, grade.FP, grade.FN)
	fmt.Fprintf(d.out, "%sSensitivity %.1f%%, Specificity %.1f%%\n", spaces(2), record.MorphGrade.Sensitivity, record.MorphGrade.Specificity)
	fmt.Fprintf(d.out, "Concentration %s\n", record.ConcentrationR2)
	fmt.Fprintf(d.out, "Motility %s\n", record.MotilityR2)
	fmt.Fprintf(d.out, "Sensitivity %s\n", record.SensitivityPercent)
}

func (d *Displayer) printDerived(derived stats.Derived) {
	fmt.Fprintf(d.out, "%sConcentration %s\n", spaces(2), stats.FormatR2(derived.ConcentrationR2))
	fmt.Fprintf(d.out, "%sMotility %s\n", spaces(2), stats.FormatR2(derived.MotilityR2))
	fmt.Fprintf(d.out, "%sSensitivity (cutoff %v): %s\n", spaces(2), stats.ReferenceCutoff, derived.Sensitivity)
	fmt.Fprintf(d.out, "%sMorph grade sensitivity %.1f%%, specificity %.1f%%\n", spaces(2),
		derived.MorphGrade.Sensitivity, derived.MorphGrade.Specificity)
}

func (d *Displayer) printGroup(title string, headers []string, series ...[]model.Value) {
	fmt.Fprintln(d.out, title)
	if len(series) == 0 || len(series[0]) == 0 {
		fmt.Fprintf(d.out, "%sNo samples\n", spaces(2))
		return
	}

	table := tablewriter.NewWriter(d.out)
	table.SetHeader(append([]string{"#"}, headers...))
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for i := range series[0] {
		row := []string{fmt.Sprintf("%d", i+1)}
		for _, values := range series {
			cell := ""
			if i < len(values) {
				cell = values[i].String()
			}
			row = append(row, cell)
		}
		table.Append(row)
	}

	table.Render()
}

func spaces(count int) string {
	return strings.Repeat(" ", count)
}
