// Package output implements the consumers that receive the sequences of a
// run: .wav and .mid files and a textual trace.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vsariola/mathtone"
)

// DefaultDir is where files are written when no directory is given.
const DefaultDir = "Results"

// timestampFormat is used in the generated file names, e.g.
// poly_20240131_235959.wav
const timestampFormat = "20060102_150405"

// FileNamer generates the names of output files: mono_<timestamp> for a
// single sequence, poly_<timestamp> for several.
type FileNamer struct {
	Dir string           // DefaultDir if empty
	Now func() time.Time // time.Now if nil
}

func (n FileNamer) dir() string {
	if n.Dir == "" {
		return DefaultDir
	}
	return n.Dir
}

// Path returns the file path for the sequences without touching the disk.
func (n FileNamer) Path(seqs []mathtone.Sequence, ext string) string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	prefix := "mono"
	if len(seqs) > 1 {
		prefix = "poly"
	}
	return filepath.Join(n.dir(), fmt.Sprintf("%s_%s%s", prefix, now().Format(timestampFormat), ext))
}

// Create creates the directory and a new file for the sequences. When a file
// of the same name already exists, e.g. two renders within a second, a
// random suffix is added to the name instead of overwriting the old file.
func (n FileNamer) Create(seqs []mathtone.Sequence, ext string) (*os.File, error) {
	if err := os.MkdirAll(n.dir(), 0755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}
	path := n.Path(seqs, ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		base := path[:len(path)-len(ext)]
		path = fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext)
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create output file: %w", err)
	}
	return f, nil
}

// writeFile writes data into a new file named after the sequences and
// returns its path.
func (n FileNamer) writeFile(seqs []mathtone.Sequence, ext string, data []byte) (string, error) {
	f, err := n.Create(seqs, ext)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("could not write %v: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close %v: %w", f.Name(), err)
	}
	return f.Name(), nil
}

// isEmpty reports if there is nothing to write: no sequences, or a first
// sequence without any tones.
func isEmpty(seqs []mathtone.Sequence) bool {
	return len(seqs) == 0 || len(seqs[0].Tones) == 0
}
