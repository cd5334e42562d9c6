package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Bless overwrites the golden file of every failing fixture in the
// report with its actual output, and returns the relative paths it
// updated. This is deliberate test maintenance for when compiler
// behavior intentionally changes; passing fixtures are left alone.
//
// With dryRun set, Bless only reports what it would update.
func Bless(report *Report, dryRun bool) ([]string, error) {
	var blessed []string
	var errs []error
	for i := range report.Results {
		r := &report.Results[i]
		if !r.Failed() {
			continue
		}
		data, err := os.ReadFile(r.Actual)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: cannot bless: %w", r.Rel, err))
			continue
		}
		if dryRun {
			blessed = append(blessed, r.Rel)
			continue
		}
		if err := writeGolden(r.Expected, data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Rel, err))
			continue
		}
		blessed = append(blessed, r.Rel)
	}
	return blessed, errors.Join(errs...)
}

func writeGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
