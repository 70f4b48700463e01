package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// ErrNotDirectory is returned when the configured dataset root does not
// exist or is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// fileName matches the LFW naming convention <Person_Name>_<digits>.<ext>.
// Files that do not match are not part of the dataset and are skipped.
var fileName = regexp.MustCompile(`^(.+)_([0-9]+)\.(?i:pgm|ppm|jpg|jpeg|png|bmp|tiff)$`)

// ParseError reports a filename that does not follow the LFW naming
// convention.
type ParseError struct {
	Name string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("filename %q does not match <name>_<digits>.<ext>", e.Name)
}

// Record describes one image file of the dataset. Person and Number are
// derived from the filename at construction time and never change.
type Record struct {
	Path   string // full path to the image file
	Name   string // base filename, e.g. "Adam_Scott_0002.pgm"
	Person string // e.g. "Adam_Scott"
	Number int    // e.g. 2
}

// ParseFilename extracts the person name and image number from a base
// filename like "Kalpana_Chawla_0002.pgm". Returns a *ParseError if the
// name does not follow the convention.
func ParseFilename(name string) (person string, number int, err error) {
	m := fileName.FindStringSubmatch(name)
	if m == nil {
		return "", 0, &ParseError{Name: name}
	}
	number, err = strconv.Atoi(m[2])
	if err != nil {
		return "", 0, &ParseError{Name: name}
	}
	return m[1], number, nil
}

// NewRecord builds a Record for a file in the given directory.
func NewRecord(dir, name string) (Record, error) {
	person, number, err := ParseFilename(name)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Path:   filepath.Join(dir, name),
		Name:   name,
		Person: person,
		Number: number,
	}, nil
}

// ScanRecords walks the dataset root recursively and returns a Record for
// every file matching the LFW naming convention, sorted by filename.
// Records whose base filename appears in exclude are left out entirely,
// so separate train/validation/test splits never share an image.
// Non-matching filenames are skipped without error.
func ScanRecords(dir string, exclude []Record) ([]Record, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("dataset directory %q: %w", dir, ErrNotDirectory)
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, rec := range exclude {
		excluded[rec.Name] = struct{}{}
	}

	var records []Record
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !fileName.MatchString(name) {
			return nil
		}
		if _, skip := excluded[name]; skip {
			return nil
		}
		rec, err := NewRecord(filepath.Dir(path), name)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan dataset directory %q: %w", dir, err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}
