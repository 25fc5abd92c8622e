package spreadsheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/stats"
	"github.com/materials-commons/mcsqa/internal/store"
	"github.com/materials-commons/mcsqa/internal/store/memory"
)

func writeRecord(t *testing.T, s *memory.Store, name string, sub *model.Submission) store.Region {
	t.Helper()
	ctx := context.Background()

	region, err := s.DuplicateRegion(ctx, "Template", name)
	require.NoError(t, err)
	for _, w := range PlaceFields(sub, stats.Derive(sub)) {
		require.NoError(t, s.WriteCell(ctx, region, w.Coordinate, w.Value))
	}
	return region
}

func TestReadBackWithCounts(t *testing.T) {
	s := memory.New("Template")
	sub := layoutSubmission()
	region := writeRecord(t, s, "r1", sub)

	counts := sub.SampleCounts()
	record, err := ReadBack(context.Background(), s, region, &counts)
	require.NoError(t, err)

	assert.Equal(t, "r1", record.Name)
	assert.Equal(t, sub.LowerLimitDetection, record.Submission.LowerLimitDetection)
	assert.Equal(t, sub.Accuracy, record.Submission.Accuracy)
	assert.Equal(t, sub.QC, record.Submission.QC)
	assert.Equal(t, "33.3%", record.SensitivityPercent)
	assert.Equal(t, stats.Confusion{Sensitivity: 100, Specificity: 75}, record.MorphGrade)
}

func TestReadBackFindsSampleCounts(t *testing.T) {
	s := memory.New("Template")
	sub := layoutSubmission()
	region := writeRecord(t, s, "r1", sub)

	record, err := ReadBack(context.Background(), s, region, nil)
	require.NoError(t, err)

	got := record.Submission
	assert.Equal(t, "Lab", got.Facility)
	assert.Equal(t, "SN1", got.SerialNumber)
	assert.Equal(t, sub.LowerLimitDetection, got.LowerLimitDetection)
	assert.Equal(t, sub.PrecisionLevel1, got.PrecisionLevel1)
	assert.Empty(t, got.PrecisionLevel2.Conc)
	assert.Len(t, got.Accuracy.SQA, 3)
	assert.Equal(t, sub.QC, got.QC)
	assert.Equal(t, sub.SampleCounts(), got.SampleCounts())
}

func TestReadBackBadNumber(t *testing.T) {
	s := memory.New("Template")
	region := writeRecord(t, s, "r1", layoutSubmission())
	require.NoError(t, s.WriteCell(context.Background(), region, TruePositiveCell, "lots"))

	_, err := ReadBack(context.Background(), s, region, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a number")
}

func TestReadBackMissingRegion(t *testing.T) {
	s := memory.New("Template")

	_, err := ReadBack(context.Background(), s, store.Region{Name: "nope"}, nil)
	require.Error(t, err)

	var serr *store.Error
	assert.True(t, errors.As(err, &serr))
}
