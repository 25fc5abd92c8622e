package model

// RawSubmission is the payload as it arrives from the entry form, either as
// JSON or YAML. Measurements are left as interface{} since the form sends
// numbers as strings and files written by hand send them as numbers. Nothing
// here has been checked, use spreadsheet.Normalize to turn it into a
// Submission.
type RawSubmission struct {
	Facility     string `json:"facility" yaml:"facility"`
	Date         string `json:"date" yaml:"date"`
	Technician   string `json:"technician" yaml:"technician"`
	SerialNumber string `json:"serialNumber" yaml:"serialNumber"`

	LowerLimitDetection *RawLowerLimitDetection `json:"lowerLimitDetection" yaml:"lowerLimitDetection"`
	PrecisionLevel1     *RawPrecision           `json:"precisionLevel1" yaml:"precisionLevel1"`
	PrecisionLevel2     *RawPrecision           `json:"precisionLevel2" yaml:"precisionLevel2"`
	Accuracy            *RawAccuracy            `json:"accuracy" yaml:"accuracy"`
	QC                  *RawQC                  `json:"qc" yaml:"qc"`

	EmailTo     string `json:"emailTo,omitempty" yaml:"emailTo,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty" yaml:"phoneNumber,omitempty"`
}

type RawLowerLimitDetection struct {
	Conc []interface{} `json:"conc" yaml:"conc"`
	MSC  []interface{} `json:"msc" yaml:"msc"`
}

type RawPrecision struct {
	Conc     []interface{} `json:"conc" yaml:"conc"`
	Motility []interface{} `json:"motility" yaml:"motility"`
	Morph    []interface{} `json:"morph" yaml:"morph"`
}

type RawAccuracy struct {
	SQA            []interface{} `json:"sqa" yaml:"sqa"`
	Manual         []interface{} `json:"manual" yaml:"manual"`
	SQAMotility    []interface{} `json:"sqaMotility" yaml:"sqaMotility"`
	ManualMotility []interface{} `json:"manualMotility" yaml:"manualMotility"`
	SQAMorph       []interface{} `json:"sqaMorph" yaml:"sqaMorph"`
	ManualMorph    []interface{} `json:"manualMorph" yaml:"manualMorph"`

	MorphGradeFinal *RawConfusion `json:"morphGradeFinal" yaml:"morphGradeFinal"`
}

type RawConfusion struct {
	TP interface{} `json:"tp" yaml:"tp"`
	TN interface{} `json:"tn" yaml:"tn"`
	FP interface{} `json:"fp" yaml:"fp"`
	FN interface{} `json:"fn" yaml:"fn"`
}

type RawQC struct {
	Level1 []interface{} `json:"level1" yaml:"level1"`
	Level2 []interface{} `json:"level2" yaml:"level2"`
}
