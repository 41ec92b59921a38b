package driver

import (
	"fmt"
	"os"

	"kvd/internal/source"
)

// StdinArg is the command-line path that selects standard input.
const StdinArg = "-"

// loadInput adds path to fs, reading stdin for StdinArg.
func loadInput(fs *source.FileSet, path string) (*source.File, error) {
	var (
		id  source.FileID
		err error
	)
	if path == StdinArg {
		id, err = fs.LoadReader(source.StdinPath, os.Stdin)
	} else {
		id, err = fs.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return fs.Get(id), nil
}
