package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-commons/mcsqa/internal/store"
)

func TestDuplicateCopiesTemplate(t *testing.T) {
	ctx := context.Background()
	s := New("Template")
	s.SetTemplateCell("Template", "A3", "Facility")

	region, err := s.DuplicateRegion(ctx, "Template", "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", region.Name)

	require.NoError(t, s.WriteCell(ctx, region, "B3", "City Lab"))

	label, err := s.ReadCell(ctx, region, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Facility", label)

	// Writing to the copy leaves the template alone.
	_, ok := s.Cells("Template")["B3"]
	assert.False(t, ok)

	names, err := s.ListRegionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Template", "r1"}, names)
}

func TestDuplicateErrors(t *testing.T) {
	ctx := context.Background()
	s := New("Template")

	_, err := s.DuplicateRegion(ctx, "Missing", "r1")
	var se *store.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, store.OpDuplicate, se.Op)

	_, err = s.DuplicateRegion(ctx, "Template", "Template")
	require.Error(t, err)
}

func TestWriteAndReadValues(t *testing.T) {
	ctx := context.Background()
	s := New("Template")
	region, err := s.DuplicateRegion(ctx, "Template", "r1")
	require.NoError(t, err)

	require.NoError(t, s.WriteCell(ctx, region, "B12", 12.5))
	require.NoError(t, s.WriteCell(ctx, region, "C12", nil))
	require.NoError(t, s.WriteCell(ctx, region, "J54", "75.0%"))

	tests := []struct {
		coord    store.Coordinate
		expected string
	}{
		{coord: "B12", expected: "12.5"},
		{coord: "C12", expected: ""},
		{coord: "J54", expected: "75.0%"},
		{coord: "Z99", expected: ""},
	}
	for _, test := range tests {
		v, err := s.ReadCell(ctx, region, test.coord)
		require.NoError(t, err)
		assert.Equal(t, test.expected, v, string(test.coord))
	}
}

func TestFailureHooks(t *testing.T) {
	ctx := context.Background()
	s := New("Template")
	boom := errors.New("boom")

	s.FailList = func() error { return boom }
	_, err := s.ListRegionNames(ctx)
	assert.True(t, errors.Is(err, boom))
	s.FailList = nil

	region, err := s.DuplicateRegion(ctx, "Template", "r1")
	require.NoError(t, err)

	s.FailWrite = func(_ string, coord store.Coordinate) error {
		if coord == "C12" {
			return boom
		}
		return nil
	}
	require.NoError(t, s.WriteCell(ctx, region, "B12", 1.0))
	err = s.WriteCell(ctx, region, "C12", 2.0)
	var se *store.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, store.Coordinate("C12"), se.Coordinate)

	s.FailDelete = func(string) error { return boom }
	assert.Error(t, s.DeleteRegion(ctx, region))
	s.FailDelete = nil
	require.NoError(t, s.DeleteRegion(ctx, region))
	assert.Nil(t, s.Cells("r1"))
}
