// Package checkpoint restores model weights and training history saved by
// earlier experiment runs. Weight files are opaque blobs named
// <identifier>.at<epoch>.weights, or <identifier>.last.weights for the
// final state of a run; history lives in a CSV file per identifier.
package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrAmbiguousLast is returned when more than one .last.weights file
// matches the identifier, leaving no way to pick the right one.
var ErrAmbiguousLast = errors.New("ambiguous weight files: multiple .last.weights match")

// Model is the slice of the external network API this package needs.
type Model interface {
	LoadWeights(path string) error
}

// Marker identifies which checkpoint of a run was resolved: either a
// concrete epoch or the special "last" snapshot.
type Marker struct {
	Last  bool
	Epoch int
}

func (m Marker) String() string {
	if m.Last {
		return "last"
	}
	return strconv.Itoa(m.Epoch)
}

// ResolveWeights scans dir for weight files of the given identifier and
// picks the one to load: a .last.weights file if present (two or more of
// them is ErrAmbiguousLast), otherwise the file with the highest epoch.
// found is false, with no error, when nothing matches.
func ResolveWeights(dir, identifier string) (path string, marker Marker, found bool, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", Marker{}, false, fmt.Errorf("failed to read weights directory %q: %w", dir, err)
	}

	prefix := identifier + "."
	var names, lasts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".weights") {
			continue
		}
		names = append(names, name)
		if strings.HasSuffix(name, ".last.weights") {
			lasts = append(lasts, name)
		}
	}

	if len(names) == 0 {
		return "", Marker{}, false, nil
	}
	if len(lasts) >= 2 {
		return "", Marker{}, false, fmt.Errorf("identifier %q: %w", identifier, ErrAmbiguousLast)
	}
	if len(lasts) == 1 {
		return filepath.Join(dir, lasts[0]), Marker{Last: true}, true, nil
	}

	// Epoch files look like "<identifier>.at500.weights"; the digits of
	// the middle segment are the epoch number.
	best := -1
	for _, name := range names {
		mid := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".weights")
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, mid)
		if digits == "" {
			continue
		}
		epoch, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		if epoch > best {
			best = epoch
		}
	}
	if best < 0 {
		return "", Marker{}, false, nil
	}
	name := fmt.Sprintf("%s.at%d.weights", identifier, best)
	return filepath.Join(dir, name), Marker{Epoch: best}, true, nil
}

// LoadWeights resolves the weight file for identifier and loads it into the
// model. With found=false the model is untouched and there is no error;
// callers decide whether a missing checkpoint is fatal.
func LoadWeights(model Model, dir, identifier string) (found bool, marker Marker, err error) {
	path, marker, found, err := ResolveWeights(dir, identifier)
	if err != nil || !found {
		return false, marker, err
	}
	if err := model.LoadWeights(path); err != nil {
		return false, marker, fmt.Errorf("failed to load weights from %q: %w", path, err)
	}
	return true, marker, nil
}

// NewRunID returns a fresh identifier for a new experiment run.
func NewRunID() string {
	return uuid.NewString()
}
