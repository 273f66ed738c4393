package evergreen

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes every environment override, e.g. EVERGREEN_SNOW_COUNT.
const EnvPrefix = "EVERGREEN_"

// Config is the full card configuration. Start from DefaultConfig, then
// layer a YAML file (LoadConfig) and environment overrides (ApplyEnv).
type Config struct {
	Window   WindowConfig   `yaml:"window" envPrefix:"WINDOW_"`
	Terminal TerminalConfig `yaml:"terminal" envPrefix:"TERM_"`
	Tree     TreeConfig     `yaml:"tree" envPrefix:"TREE_"`
	Snow     SnowConfig     `yaml:"snow" envPrefix:"SNOW_"`
	Intro    IntroConfig    `yaml:"intro" envPrefix:"INTRO_"`
	Blur     BlurConfig     `yaml:"blur" envPrefix:"BLUR_"`
	Audio    AudioConfig    `yaml:"audio" envPrefix:"AUDIO_"`
}

// WindowConfig controls the windowed backend.
type WindowConfig struct {
	Title         string `yaml:"title" env:"TITLE"`
	Width         int    `yaml:"width" env:"WIDTH"`
	Height        int    `yaml:"height" env:"HEIGHT"`
	Background    string `yaml:"background" env:"BACKGROUND"`
	ShowFPS       bool   `yaml:"showFPS" env:"SHOW_FPS"`
	ScreenshotDir string `yaml:"screenshotDir" env:"SCREENSHOT_DIR"`
	// Script is an optional capture script replayed by the window backend.
	Script string `yaml:"script" env:"SCRIPT"`
}

// TerminalConfig controls the terminal backend.
type TerminalConfig struct {
	FPS int `yaml:"fps" env:"FPS"`
	// Scale is the number of terminal pixels per surface unit. Each cell
	// holds 1x2 pixels.
	Scale   float64 `yaml:"scale" env:"SCALE"`
	LogFile string  `yaml:"logFile" env:"LOG_FILE"`
}

// LayerSpec describes one triangular layer of the tree.
type LayerSpec struct {
	// Scale is the layer's base width relative to the tree base width.
	Scale float64 `yaml:"scale" env:"SCALE"`
	// Count is the number of target points sampled inside the layer.
	Count int `yaml:"count" env:"COUNT"`
	// Offset lifts the layer's baseline by this fraction of the tree height.
	Offset float64 `yaml:"offset" env:"OFFSET"`
}

// TreeConfig holds tree geometry and tree particle appearance.
type TreeConfig struct {
	BaseWidth   float64     `yaml:"baseWidth" env:"BASE_WIDTH"`
	Height      float64     `yaml:"height" env:"HEIGHT"`
	Anchor      float64     `yaml:"anchor" env:"ANCHOR"`
	LayerHeight float64     `yaml:"layerHeight" env:"LAYER_HEIGHT"`
	Layers      []LayerSpec `yaml:"layers" envPrefix:"LAYERS_"`

	Size          Range    `yaml:"size"`
	Speed         Range    `yaml:"speed"`
	AngleStep     float64  `yaml:"angleStep" env:"ANGLE_STEP"`
	StarSize      float64  `yaml:"starSize" env:"STAR_SIZE"`
	StarBase      float64  `yaml:"starBase" env:"STAR_BASE"`
	StarAmplitude float64  `yaml:"starAmplitude" env:"STAR_AMPLITUDE"`
	TwinkleRate   float64  `yaml:"twinkleRate" env:"TWINKLE_RATE"`
	GlowRadius    float64  `yaml:"glowRadius" env:"GLOW_RADIUS"`
	Palette       []string `yaml:"palette" env:"PALETTE" envSeparator:","`
	StarColor     string   `yaml:"starColor" env:"STAR_COLOR"`

	LinkDistance float64 `yaml:"linkDistance" env:"LINK_DISTANCE"`
	LinkWidth    float64 `yaml:"linkWidth" env:"LINK_WIDTH"`
}

// SnowConfig holds the snow pool settings.
type SnowConfig struct {
	Count    int     `yaml:"count" env:"COUNT"`
	Size     Range   `yaml:"size"`
	SpeedX   Range   `yaml:"speedX"`
	SpeedY   Range   `yaml:"speedY"`
	Opacity  Range   `yaml:"opacity"`
	RespawnY float64 `yaml:"respawnY" env:"RESPAWN_Y"`
}

// IntroConfig holds the intro screen text and the reveal timing.
type IntroConfig struct {
	Title  string `yaml:"title" env:"TITLE"`
	Prompt string `yaml:"prompt" env:"PROMPT"`
	// RevealDelay is how long the intro fades after the start trigger
	// before the card appears.
	RevealDelay time.Duration `yaml:"revealDelay" env:"REVEAL_DELAY"`
}

// BlurConfig holds the post-processing blur applied after the reveal.
type BlurConfig struct {
	Delay  time.Duration `yaml:"delay" env:"DELAY"`
	Fade   time.Duration `yaml:"fade" env:"FADE"`
	Radius float64       `yaml:"radius" env:"RADIUS"`
}

// AudioConfig holds the background music settings.
type AudioConfig struct {
	Path   string  `yaml:"path" env:"PATH"`
	Volume float64 `yaml:"volume" env:"VOLUME"`
}

// DefaultConfig returns the stock card.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:         "Merry Christmas",
			Width:         800,
			Height:        600,
			Background:    "#0b1026",
			ScreenshotDir: "screenshots",
		},
		Terminal: TerminalConfig{
			FPS:   30,
			Scale: 0.1,
		},
		Tree: TreeConfig{
			BaseWidth:   0.6,
			Height:      0.6,
			Anchor:      0.8,
			LayerHeight: 0.4,
			Layers: []LayerSpec{
				{Scale: 1.0, Count: 80, Offset: 0},
				{Scale: 0.7, Count: 60, Offset: 0.3},
				{Scale: 0.4, Count: 40, Offset: 0.6},
			},
			Size:          Range{1, 4},
			Speed:         Range{0.02, 0.05},
			AngleStep:     0.01,
			StarSize:      10,
			StarBase:      8,
			StarAmplitude: 4,
			TwinkleRate:   0.005,
			GlowRadius:    20,
			Palette:       []string{"#ff0000", "#00ff00", "#d4af37", "#00ffff", "#ff00ff", "#ffffff"},
			StarColor:     "#ffff00",
			LinkDistance:  50,
			LinkWidth:     0.2,
		},
		Snow: SnowConfig{
			Count:    200,
			Size:     Range{1, 3},
			SpeedX:   Range{-0.25, 0.25},
			SpeedY:   Range{0.5, 1.5},
			Opacity:  Range{0.3, 0.8},
			RespawnY: -10,
		},
		Intro: IntroConfig{
			Title:       "A card for you",
			Prompt:      "click to open",
			RevealDelay: time.Second,
		},
		Blur: BlurConfig{
			Delay:  3 * time.Second,
			Fade:   2 * time.Second,
			Radius: 3,
		},
		Audio: AudioConfig{
			Path:   "assets/music.mp3",
			Volume: 0.5,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns the
// defaults. Missing keys keep their default values; lists replace defaults
// wholesale.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from EVERGREEN_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load is LoadConfig followed by ApplyEnv and Validate.
func Load(path string) (Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and parses every color.
func (c Config) Validate() error {
	if len(c.Tree.Layers) == 0 {
		return fmt.Errorf("%w: tree needs at least one layer", ErrInvalidConfig)
	}
	for i, l := range c.Tree.Layers {
		if l.Count < 0 {
			return fmt.Errorf("%w: layer %d count %d", ErrInvalidConfig, i, l.Count)
		}
		if l.Scale < 0 {
			return fmt.Errorf("%w: layer %d scale %v", ErrInvalidConfig, i, l.Scale)
		}
	}
	// Speeds are sampled in [Min, Max); a speed of 1 would land on the target.
	if c.Tree.Speed.Min <= 0 || c.Tree.Speed.Min >= 1 || c.Tree.Speed.Max > 1 || c.Tree.Speed.Min > c.Tree.Speed.Max {
		return fmt.Errorf("%w: tree speed must lie in (0, 1), got %v", ErrInvalidConfig, c.Tree.Speed)
	}
	if c.Tree.Size.Min < 0 || c.Tree.Size.Min > c.Tree.Size.Max {
		return fmt.Errorf("%w: tree size %v", ErrInvalidConfig, c.Tree.Size)
	}
	if c.Tree.StarAmplitude < 0 || c.Tree.StarAmplitude > c.Tree.StarBase {
		return fmt.Errorf("%w: star amplitude %v exceeds base %v", ErrInvalidConfig, c.Tree.StarAmplitude, c.Tree.StarBase)
	}
	if c.Tree.LinkDistance < 0 {
		return fmt.Errorf("%w: link distance %v", ErrInvalidConfig, c.Tree.LinkDistance)
	}
	if len(c.Tree.Palette) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	}
	for _, hex := range append([]string{c.Tree.StarColor, c.Window.Background}, c.Tree.Palette...) {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.Snow.Count < 0 {
		return fmt.Errorf("%w: snow count %d", ErrInvalidConfig, c.Snow.Count)
	}
	if c.Snow.SpeedY.Min <= 0 {
		return fmt.Errorf("%w: snow must fall, speedY %v", ErrInvalidConfig, c.Snow.SpeedY)
	}
	if c.Terminal.FPS <= 0 {
		return fmt.Errorf("%w: terminal fps %d", ErrInvalidConfig, c.Terminal.FPS)
	}
	if c.Terminal.Scale <= 0 {
		return fmt.Errorf("%w: terminal scale %v", ErrInvalidConfig, c.Terminal.Scale)
	}
	if c.Blur.Radius < 0 || c.Blur.Delay < 0 || c.Blur.Fade < 0 || c.Intro.RevealDelay < 0 {
		return fmt.Errorf("%w: negative blur or reveal timing", ErrInvalidConfig)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %v", ErrInvalidConfig, c.Audio.Volume)
	}
	return nil
}
