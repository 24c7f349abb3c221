// Package session holds the settings of a rendering run. The defaults are
// embedded in session.yml and can be overridden by
// $UserConfigDir/mathtone/session.yml, then by an explicitly given file,
// then by command line flags.
package session

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/processor"
	"github.com/vsariola/mathtone/render"
	"gopkg.in/yaml.v3"
)

type (
	Session struct {
		From          mathtone.NumberFormat
		To            []mathtone.NumberFormat `yaml:",flow"`
		Processor     processor.Kind
		BaseFrequency float64
		BaseDuration  time.Duration
		Timbre        string
		Chords        bool
		Output        OutputSettings
		Render        render.Config
	}

	OutputSettings struct {
		Dir   string
		Wav   bool
		Midi  bool
		Trace bool
		Play  bool
	}
)

//go:embed session.yml
var defaultSessionYaml []byte

// FileName is the name of the user's session file in the config directory.
const FileName = "session.yml"

func Default() Session {
	var s Session
	if err := decode(bytes.NewReader(defaultSessionYaml), &s); err != nil {
		panic(fmt.Errorf("failed to unmarshal default session: %w", err))
	}
	return s
}

// UserPath returns the path of the user's session file.
func UserPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "mathtone", FileName), nil
}

// Load returns the default session, overlaid by the user's session file if
// one exists, and then by the file at path unless path is empty. Keys
// missing from a file keep their previous values.
func Load(path string) (Session, error) {
	s := Default()
	if userPath, err := UserPath(); err == nil {
		if err := s.ReadFile(userPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, err
		}
	}
	if path != "" {
		if err := s.ReadFile(path); err != nil {
			return s, err
		}
	}
	return s, s.Validate()
}

// ReadFile overlays the session with the contents of a YAML file.
func (s *Session) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.Read(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

func (s *Session) Read(r io.Reader) error {
	if err := decode(r, s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("could not decode session: %w", err)
	}
	return nil
}

func decode(r io.Reader, s *Session) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(s)
}

// Validate checks the settings that cannot be fixed by defaults.
func (s Session) Validate() error {
	if !s.From.Valid() {
		return fmt.Errorf("invalid input format %v", s.From)
	}
	if len(s.To) == 0 {
		return errors.New("no output formats given")
	}
	for _, f := range s.To {
		if !f.Valid() {
			return fmt.Errorf("invalid output format %v", f)
		}
	}
	if s.BaseFrequency <= 0 {
		return fmt.Errorf("base frequency must be positive, got %v", s.BaseFrequency)
	}
	if s.BaseDuration <= 0 {
		return fmt.Errorf("base duration must be positive, got %v", s.BaseDuration)
	}
	if s.Render.NormalizeTarget > s.Render.NormalizeThreshold {
		return fmt.Errorf("normalization target %v exceeds threshold %v", s.Render.NormalizeTarget, s.Render.NormalizeThreshold)
	}
	return nil
}

// ProcessorConfig returns the processor settings of the session.
func (s Session) ProcessorConfig(constants mathtone.ConstantLookup) processor.Config {
	return processor.Config{
		BaseFrequency: s.BaseFrequency,
		BaseDuration:  s.BaseDuration,
		Constants:     constants,
		Chords:        s.Chords,
	}
}

// Renderer returns a renderer with the session's render settings.
func (s Session) Renderer() *render.Renderer {
	return render.New(render.WithConfig(s.Render))
}

// Marshal returns the session as YAML, e.g. to be saved as a starting point
// for the user's session file.
func (s Session) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
