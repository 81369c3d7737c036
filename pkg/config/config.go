package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/tracer"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "descent.yaml"

// FrameRates are the playback rates a user may pick.
var FrameRates = []int{15, 24, 30, 60, 120}

// DefaultFPS is the playback rate used when none is configured.
const DefaultFPS = 30

// Settings is the user-facing configuration surface.
type Settings struct {
	Ranges  domain.Ranges `yaml:"ranges" json:"ranges" mapstructure:"ranges"`
	Opacity float64       `yaml:"opacity" json:"opacity" mapstructure:"opacity"`
	FPS     int           `yaml:"fps" json:"fps" mapstructure:"fps"`
	Ascend  bool          `yaml:"ascend" json:"ascend" mapstructure:"ascend"`

	Resolution      int            `yaml:"resolution" json:"resolution" mapstructure:"resolution"`
	NumericGradient bool           `yaml:"numeric_gradient" json:"numeric_gradient" mapstructure:"numeric_gradient"`
	Tracer          tracer.Options `yaml:"tracer" json:"tracer" mapstructure:"tracer"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Ranges:     domain.DefaultRanges(),
		Opacity:    0.8,
		FPS:        DefaultFPS,
		Resolution: domain.GridResolution,
		Tracer:     tracer.DefaultOptions(),
	}
}

// Mode maps the ascend toggle to a walk direction.
func (s Settings) Mode() domain.Mode { return domain.ModeOf(s.Ascend) }

// Validate checks every field.
func (s Settings) Validate() error {
	if err := s.Ranges.Validate(); err != nil {
		return err
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("%w: opacity %g outside [0, 1]", domain.ErrInvalidConfig, s.Opacity)
	}
	if err := ValidateFPS(s.FPS); err != nil {
		return err
	}
	if s.Resolution < 2 {
		return fmt.Errorf("%w: resolution must be at least 2, got %d", domain.ErrInvalidConfig, s.Resolution)
	}
	if s.Tracer.LearningRate < 0 || s.Tracer.MaxSteps < 0 || s.Tracer.GradientFloor < 0 {
		return fmt.Errorf("%w: tracer options must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// ValidateFPS checks that fps is one of FrameRates.
func ValidateFPS(fps int) error {
	if !slices.Contains(FrameRates, fps) {
		return fmt.Errorf("%w: fps %d not in %v", domain.ErrInvalidConfig, fps, FrameRates)
	}
	return nil
}

// Load reads a settings file (YAML or JSON) over the defaults and validates
// the result. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("%w: failed to parse %s: %w", domain.ErrInvalidConfig, path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("%w: failed to parse %s: %w", domain.ErrInvalidConfig, path, err)
		}
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Decode fills out from a loosely typed map such as tool-call arguments.
// Numeric strings and floats are converted to the target field types.
func Decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}
