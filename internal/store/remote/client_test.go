package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/processor"
	"github.com/materials-commons/mcsqa/internal/store"
	"github.com/materials-commons/mcsqa/internal/store/memory"
)

const testAPIKey = "secret"

// regionService serves the REST endpoints on top of a memory store.
type regionService struct {
	store *memory.Store
}

func (rs *regionService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("apikey") != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var parts []string
	for _, part := range strings.Split(strings.Trim(r.URL.EscapedPath(), "/"), "/") {
		p, err := url.PathUnescape(part)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		parts = append(parts, p)
	}

	ctx := r.Context()
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		names, err := rs.store.ListRegionNames(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeData(w, names)

	case len(parts) == 1 && r.Method == http.MethodPost:
		var body struct {
			Template string `json:"template"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		region, err := rs.store.DuplicateRegion(ctx, body.Template, body.Name)
		if err != nil {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeData(w, map[string]string{"name": region.Name})

	case len(parts) == 2 && r.Method == http.MethodDelete:
		if err := rs.store.DeleteRegion(ctx, store.Region{Name: parts[1]}); err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeData(w, nil)

	case len(parts) == 4 && r.Method == http.MethodPut:
		var body struct {
			Value interface{} `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := rs.store.WriteCell(ctx, store.Region{Name: parts[1]}, store.Coordinate(parts[3]), body.Value); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeData(w, nil)

	case len(parts) == 4 && r.Method == http.MethodGet:
		value, err := rs.store.ReadCell(ctx, store.Region{Name: parts[1]}, store.Coordinate(parts[3]))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeData(w, map[string]string{"value": value})

	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("no route for %s %s", r.Method, r.URL.Path))
	}
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func newTestClient(t *testing.T) (*Client, *memory.Store) {
	t.Helper()
	s := memory.New("Template")
	server := httptest.NewServer(&regionService{store: s})
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", testAPIKey), s
}

func TestListAndDuplicate(t *testing.T) {
	ctx := context.Background()
	c, s := newTestClient(t)
	s.SetTemplateCell("Template", "A3", "Facility")

	region, err := c.DuplicateRegion(ctx, "Template", "2024-03-05-SN/42-Lab")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05-SN/42-Lab", region.Name)

	names, err := c.ListRegionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Template", "2024-03-05-SN/42-Lab"}, names)

	label, err := c.ReadCell(ctx, region, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Facility", label)
}

func TestWriteAndReadCells(t *testing.T) {
	ctx := context.Background()
	c, s := newTestClient(t)

	region, err := c.DuplicateRegion(ctx, "Template", "r1")
	require.NoError(t, err)

	require.NoError(t, c.WriteCell(ctx, region, "B12", 0.5))
	require.NoError(t, c.WriteCell(ctx, region, "I54", "R² = 0.6400"))
	require.NoError(t, c.WriteCell(ctx, region, "B13", 1.0))
	require.NoError(t, c.WriteCell(ctx, region, "B13", nil))

	cells := s.Cells("r1")
	assert.Equal(t, 0.5, cells["B12"])
	assert.Equal(t, "R² = 0.6400", cells["I54"])
	assert.NotContains(t, cells, store.Coordinate("B13"))

	value, err := c.ReadCell(ctx, region, "B12")
	require.NoError(t, err)
	assert.Equal(t, "0.5", value)
}

func TestErrorsCarryTheServiceMessage(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	var serr *store.Error
	_, err := c.DuplicateRegion(ctx, "Missing", "r1")
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, store.OpDuplicate, serr.Op)
	assert.Contains(t, err.Error(), "HTTP Status: 409")
	assert.Contains(t, err.Error(), "template region 'Missing' not found")

	err = c.DeleteRegion(ctx, store.Region{Name: "r1"})
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, store.OpDelete, serr.Op)
	assert.Contains(t, err.Error(), "HTTP Status: 404")
}

func TestBadAPIKey(t *testing.T) {
	c, _ := newTestClient(t)
	c.APIKey = "wrong"

	_, err := c.ListRegionNames(context.Background())
	assert.True(t, errors.Is(err, ErrAuth))
}

func TestLocation(t *testing.T) {
	c := NewClient("https://qa.example.com/api/", "")
	assert.Equal(t, "https://qa.example.com/api/regions/a%2Fb", c.Location(store.Region{Name: "a/b"}))
}

func TestSubmitRollsBackOverTheWire(t *testing.T) {
	ctx := context.Background()
	c, s := newTestClient(t)
	s.FailWrite = func(region string, coord store.Coordinate) error {
		if coord == "B71" {
			return errors.New("quota exceeded")
		}
		return nil
	}

	raw := &model.RawSubmission{
		Facility:            "Lab",
		Date:                "2024-03-05",
		Technician:          "Tech",
		SerialNumber:        "SN1",
		LowerLimitDetection: &model.RawLowerLimitDetection{},
		PrecisionLevel1:     &model.RawPrecision{},
		PrecisionLevel2:     &model.RawPrecision{},
		Accuracy:            &model.RawAccuracy{},
		QC:                  &model.RawQC{Level1: []interface{}{1}, Level2: []interface{}{2}},
	}

	receipt, err := processor.NewWriter(c, "Template", nil).Submit(ctx, raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, processor.RolledBack, receipt.State)
	assert.NoError(t, receipt.RollbackErr)

	names, err := c.ListRegionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Template"}, names)

	s.FailWrite = nil
	receipt, err = processor.NewWriter(c, "Template", nil).Submit(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, processor.Committed, receipt.State)
	assert.Equal(t, 1.0, s.Cells("2024-03-05-SN1-Lab")["B71"])
}
