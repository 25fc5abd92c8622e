package spreadsheet

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
)

// Payload is a submission loaded from a file along with the file it came from.
type Payload struct {
	Path       string
	Submission *model.RawSubmission
}

// LoadSubmission reads a submission payload from path. Files ending in .yaml
// or .yml are read as YAML, everything else as JSON (which is what the entry
// form posts).
func LoadSubmission(path string) (*model.RawSubmission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading submission %s", path)
	}

	raw, err := DecodeSubmission(data, isYAML(path))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding submission %s", path)
	}

	return raw, nil
}

// DecodeSubmission decodes a submission payload.
func DecodeSubmission(data []byte, asYAML bool) (*model.RawSubmission, error) {
	var raw model.RawSubmission

	if asYAML {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &raw, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// LoadSubmissions will load each of the given payload files. Rather than
// stopping at the first bad file, it loads and validates all of them and
// returns a multierror holding every problem, so the user can see everything
// that needs fixing in one run. Only the payloads that loaded and passed
// validation are returned.
func LoadSubmissions(paths []string) ([]Payload, error) {
	var (
		payloads  []Payload
		savedErrs *multierror.Error
	)

	// Make sure the blank keywords are sane before we start, otherwise
	// numbers in a payload could be thrown away as blanks.
	if err := ValidateKeywords(); err != nil {
		return payloads, err
	}

	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		raw, err := LoadSubmission(path)
		if err != nil {
			savedErrs = multierror.Append(savedErrs, err)
			continue
		}

		if _, err := Normalize(raw); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				for _, e := range verr.Errors() {
					savedErrs = multierror.Append(savedErrs, errors.Wrapf(e, "%s", path))
				}
			} else {
				savedErrs = multierror.Append(savedErrs, errors.Wrapf(err, "%s", path))
			}
			continue
		}

		payloads = append(payloads, Payload{Path: path, Submission: raw})
	}

	return payloads, savedErrs.ErrorOrNil()
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
