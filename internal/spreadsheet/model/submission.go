package model

// Submission is a validated, normalized SQA study. Each group holds paired
// series where index i across the group refers to the same physical sample.
// A Submission only lives for the duration of one write to the store.
//
// The study is laid out on a copy of the template worksheet. Using the
// accuracy group as an example, with three samples the worksheet looks like:
//        A      B        C              D                E          F
//   48 |sqa   |manual  |sqa motility  |manual motility |sqa morph |manual morph|
//   49 |12.5  |13.0    |45            |47              |4         |5           |
//   50 |...
// where row 48 is the first sample. See spreadsheet.PlaceFields for the full
// table of coordinates.
type Submission struct {
	Facility     string
	Date         string
	Technician   string
	SerialNumber string

	LowerLimitDetection LowerLimitDetection
	PrecisionLevel1     Precision
	PrecisionLevel2     Precision
	Accuracy            Accuracy
	QC                  QC

	// Contact metadata, never written to the record.
	EmailTo     string
	PhoneNumber string
}

type LowerLimitDetection struct {
	Conc []Value
	MSC  []Value
}

type Precision struct {
	Conc     []Value
	Motility []Value
	Morph    []Value
}

type Accuracy struct {
	SQA            []Value
	Manual         []Value
	SQAMotility    []Value
	ManualMotility []Value
	SQAMorph       []Value
	ManualMorph    []Value

	MorphGradeFinal Confusion
}

// Confusion is the 2x2 tally of the final morphology grade against the
// manual reference. Counts that could not be read are 0.
type Confusion struct {
	TP float64
	TN float64
	FP float64
	FN float64
}

type QC struct {
	Level1 []Value
	Level2 []Value
}

// SampleCounts returns the number of samples in each group. It is what
// a reader needs to know to find every row of a record again.
func (s *Submission) SampleCounts() Counts {
	return Counts{
		LowerLimitDetection: len(s.LowerLimitDetection.Conc),
		PrecisionLevel1:     len(s.PrecisionLevel1.Conc),
		PrecisionLevel2:     len(s.PrecisionLevel2.Conc),
		Accuracy:            len(s.Accuracy.SQA),
		QC:                  len(s.QC.Level1),
	}
}

// Counts is the number of sample rows per group.
type Counts struct {
	LowerLimitDetection int
	PrecisionLevel1     int
	PrecisionLevel2     int
	Accuracy            int
	QC                  int
}
