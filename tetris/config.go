package tetris

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// SpeedCurve maps a level to a gravity interval:
// max(Default * Factor^level, Min).
type SpeedCurve struct {
	DefaultMS int     `yaml:"default_ms"`
	MinMS     int     `yaml:"min_ms"`
	Factor    float64 `yaml:"factor"`
}

// Interval returns the gravity interval at level.
func (s SpeedCurve) Interval(level int) time.Duration {
	ms := float64(s.DefaultMS) * math.Pow(s.Factor, float64(level))
	return time.Duration(max(ms, float64(s.MinMS)) * float64(time.Millisecond))
}

// Config holds the tunables of a game. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	BoardWidth    int        `yaml:"board_width"`
	BoardHeight   int        `yaml:"board_height"`
	NextPieces    int        `yaml:"next_pieces"`
	PointsPerLine []int      `yaml:"points_per_line"`
	LinesPerLevel int        `yaml:"lines_per_level"`
	StartLevel    int        `yaml:"start_level"`
	Speed         SpeedCurve `yaml:"speed"`
	Kicks         string     `yaml:"kicks"`
	Randomizer    string     `yaml:"randomizer"`
	Seed          uint64     `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		BoardWidth:    10,
		BoardHeight:   20,
		NextPieces:    3,
		PointsPerLine: []int{100, 300, 500, 800},
		LinesPerLevel: 10,
		Speed: SpeedCurve{
			DefaultMS: 1000,
			MinMS:     100,
			Factor:    0.85,
		},
		Kicks:      "fixed",
		Randomizer: "uniform",
	}
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	minSize := standardCatalog.MaxSize()
	if c.BoardWidth < minSize {
		fail("board_width %d is narrower than the largest piece (%d)", c.BoardWidth, minSize)
	}
	if c.BoardHeight < minSize {
		fail("board_height %d is shorter than the largest piece (%d)", c.BoardHeight, minSize)
	}
	if c.NextPieces < 1 {
		fail("next_pieces must be at least 1, got %d", c.NextPieces)
	}
	if len(c.PointsPerLine) == 0 {
		fail("points_per_line is empty")
	}
	for i, p := range c.PointsPerLine {
		if p <= 0 {
			fail("points_per_line[%d] must be positive, got %d", i, p)
		}
		if i > 0 && p <= c.PointsPerLine[i-1] {
			fail("points_per_line must be strictly increasing at index %d", i)
		}
	}
	if c.LinesPerLevel < 1 {
		fail("lines_per_level must be at least 1, got %d", c.LinesPerLevel)
	}
	if c.StartLevel < 0 {
		fail("start_level must not be negative, got %d", c.StartLevel)
	}
	if c.Speed.MinMS <= 0 {
		fail("speed.min_ms must be positive, got %d", c.Speed.MinMS)
	}
	if c.Speed.DefaultMS < c.Speed.MinMS {
		fail("speed.default_ms %d is below speed.min_ms %d", c.Speed.DefaultMS, c.Speed.MinMS)
	}
	if c.Speed.Factor <= 0 || c.Speed.Factor >= 1 {
		fail("speed.factor must be in (0, 1), got %v", c.Speed.Factor)
	}
	if _, err := KickTableByName(c.Kicks); err != nil {
		fail("%v", err)
	}
	if _, err := c.newRandomizer(); err != nil {
		fail("%v", err)
	}

	return errors.Join(errs...)
}

// LinePoints returns the score for clearing n rows in one lock at level.
func (c Config) LinePoints(n, level int) int {
	if n <= 0 {
		return 0
	}
	idx := min(n-1, len(c.PointsPerLine)-1)
	return c.PointsPerLine[idx] * (level + 1)
}

func (c Config) newRandomizer() (Randomizer, error) {
	switch c.Randomizer {
	case "", "uniform":
		return NewUniformRandomizer(c.Seed), nil
	case "bag":
		return NewBagRandomizer(c.Seed), nil
	}
	return nil, fmt.Errorf("unknown randomizer %q", c.Randomizer)
}

// ParseConfig overlays YAML onto DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
