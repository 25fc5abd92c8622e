// Package wizard models moving through the sections of the entry form. It
// knows which section is showing and when a submission may be made. It
// knows nothing about what is entered.
package wizard

import (
	"sync"

	"github.com/pkg/errors"
)

// Section is one page of the form.
type Section struct {
	ID    string
	Title string
}

// Sections of the form, in order. The last one is the review page.
var Sections = []Section{
	{ID: "header", Title: "SQA Precision / Accuracy / Lower Limit Detection Study"},
	{ID: "lowerLimitDetection", Title: "Lower Limit Detection"},
	{ID: "precisionLevel1", Title: "Precision & Sensitivity - Level 1"},
	{ID: "precisionLevel2", Title: "Precision & Sensitivity - Level 2"},
	{ID: "accuracy", Title: "Accuracy"},
	{ID: "qc", Title: "Precision & Sensitivity - QC"},
	{ID: "verification", Title: "Verification"},
}

var (
	// ErrNotInReview is returned by Submit outside the verification section.
	ErrNotInReview = errors.New("submissions can only be made from the verification section")

	// ErrSubmitting is returned by Submit while another submission is running.
	ErrSubmitting = errors.New("a submission is already in progress")
)

type Wizard struct {
	mu         sync.Mutex
	sections   []Section
	current    int
	submitting bool
}

func New() *Wizard {
	return &Wizard{sections: Sections}
}

func (w *Wizard) Current() Section {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sections[w.current]
}

// Index is the 0 based position of the current section.
func (w *Wizard) Index() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Next moves forward one section. It returns false, and stays put, on
// the last section.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current >= len(w.sections)-1 {
		return false
	}
	w.current++
	return true
}

// Back moves back one section. It returns false, and stays put, on the
// first section.
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == 0 {
		return false
	}
	w.current--
	return true
}

// InReview is true on the verification section.
func (w *Wizard) InReview() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current == len(w.sections)-1
}

// Submit runs fn if the wizard is on the verification section and no other
// submission is running. The wizard stays on the verification section
// whatever fn returns.
func (w *Wizard) Submit(fn func() error) error {
	w.mu.Lock()
	switch {
	case w.current != len(w.sections)-1:
		w.mu.Unlock()
		return ErrNotInReview
	case w.submitting:
		w.mu.Unlock()
		return ErrSubmitting
	}
	w.submitting = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	return fn()
}
