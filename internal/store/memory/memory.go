// Package memory is an in-memory store. It is used for dry runs and in
// tests, where the failure hooks let a test break any single operation.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/materials-commons/mcsqa/internal/store"
)

// Store keeps every region as a map of cells. Region order is the order of
// creation, like worksheet tabs.
type Store struct {
	mu      sync.Mutex
	order   []string
	regions map[string]map[store.Coordinate]interface{}

	// Failure hooks. When set and returning a non-nil error the operation
	// fails with that error and changes nothing.
	FailList      func() error
	FailDuplicate func(template, name string) error
	FailWrite     func(region string, coord store.Coordinate) error
	FailDelete    func(region string) error
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Reader = (*Store)(nil)
)

// New returns a store containing an empty region for each template name.
func New(templates ...string) *Store {
	s := &Store{regions: make(map[string]map[store.Coordinate]interface{})}
	for _, name := range templates {
		s.order = append(s.order, name)
		s.regions[name] = make(map[store.Coordinate]interface{})
	}
	return s
}

func (s *Store) ListRegionNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailList != nil {
		if err := s.FailList(); err != nil {
			return nil, store.Wrap(store.OpList, "", "", err)
		}
	}

	names := make([]string, len(s.order))
	copy(names, s.order)
	return names, nil
}

func (s *Store) DuplicateRegion(_ context.Context, template, name string) (store.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDuplicate != nil {
		if err := s.FailDuplicate(template, name); err != nil {
			return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
		}
	}

	src, ok := s.regions[template]
	if !ok {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", fmt.Errorf("template region '%s' not found", template))
	}
	if _, exists := s.regions[name]; exists {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", fmt.Errorf("region '%s' already exists", name))
	}

	cells := make(map[store.Coordinate]interface{}, len(src))
	for coord, value := range src {
		cells[coord] = value
	}
	s.regions[name] = cells
	s.order = append(s.order, name)

	return store.Region{Name: name}, nil
}

func (s *Store) WriteCell(_ context.Context, region store.Region, coord store.Coordinate, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrite != nil {
		if err := s.FailWrite(region.Name, coord); err != nil {
			return store.Wrap(store.OpWrite, region.Name, coord, err)
		}
	}

	cells, ok := s.regions[region.Name]
	if !ok {
		return store.Wrap(store.OpWrite, region.Name, coord, fmt.Errorf("region not found"))
	}

	if value == nil {
		delete(cells, coord)
		return nil
	}
	cells[coord] = value
	return nil
}

func (s *Store) DeleteRegion(_ context.Context, region store.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDelete != nil {
		if err := s.FailDelete(region.Name); err != nil {
			return store.Wrap(store.OpDelete, region.Name, "", err)
		}
	}

	if _, ok := s.regions[region.Name]; !ok {
		return store.Wrap(store.OpDelete, region.Name, "", fmt.Errorf("region not found"))
	}

	delete(s.regions, region.Name)
	for i, name := range s.order {
		if name == region.Name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReadCell returns the text form of a cell. Numbers are formatted the way
// a workbook stores them, so values read back compare equal across stores.
func (s *Store) ReadCell(_ context.Context, region store.Region, coord store.Coordinate) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells, ok := s.regions[region.Name]
	if !ok {
		return "", store.Wrap(store.OpRead, region.Name, coord, fmt.Errorf("region not found"))
	}

	return store.FormatValue(cells[coord]), nil
}

// Cells returns a copy of a region's cells, nil if the region doesn't exist.
func (s *Store) Cells(name string) map[store.Coordinate]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells, ok := s.regions[name]
	if !ok {
		return nil
	}
	c := make(map[store.Coordinate]interface{}, len(cells))
	for coord, value := range cells {
		c[coord] = value
	}
	return c
}

// SetTemplateCell presets a cell in a region, typically a label in the template.
func (s *Store) SetTemplateCell(name string, coord store.Coordinate, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cells, ok := s.regions[name]; ok {
		cells[coord] = value
	}
}

func (s *Store) Location(region store.Region) string {
	return "memory:" + region.Name
}
