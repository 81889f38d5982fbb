package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/dashboard"
	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
	"github.com/KaramelBytes/tabloom-cli/internal/parser"
	"github.com/KaramelBytes/tabloom-cli/internal/store"
)

var errNoDataset = errors.New("no dataset loaded; run 'tabloom load <file>' first")

func openStore() (*store.FileStore, error) {
	if cfg == nil || cfg.DataDir == "" {
		return nil, errors.New("data directory not configured")
	}
	return store.New(cfg.DataDir, logger), nil
}

// datasetFromArgs decodes the file named in args, or falls back to the stored
// dataset when no file is given.
func datasetFromArgs(args []string, opt parser.Options) (string, dataset.Dataset, error) {
	if len(args) > 0 {
		rows, err := parser.DecodeFile(args[0], opt)
		if err != nil {
			return "", nil, err
		}
		return displayName(args[0]), rows, nil
	}
	st, err := openStore()
	if err != nil {
		return "", nil, err
	}
	snap, ok, err := st.Load()
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, errNoDataset
	}
	return snap.Name, snap.Rows, nil
}

// parseDelimiter maps a --delimiter value to a rune; empty means auto-detect.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func decodeOptions(delimiter, sheet string) (parser.Options, error) {
	if delimiter == "" && cfg != nil {
		delimiter = cfg.DefaultDelimiter
	}
	d, err := parseDelimiter(delimiter)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{Delimiter: d, Sheet: strings.TrimSpace(sheet)}, nil
}

func dashboardOptions() dashboard.Options {
	opt := dashboard.DefaultOptions()
	if cfg != nil {
		if cfg.CategoryLimit > 0 {
			opt.CategoryLimit = cfg.CategoryLimit
		}
		if cfg.SeriesRowLimit > 0 {
			opt.SeriesRowLimit = cfg.SeriesRowLimit
		}
	}
	return opt
}

// displayName is the file name recorded with a dataset.
func displayName(path string) string { return filepath.Base(path) }
