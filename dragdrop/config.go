package dragdrop

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"github.com/BurntSushi/toml"
)

const (
	clipsToBoundsKey        = "xdragdrop:clipsToBounds"
	cornerRadiusKey         = "xdragdrop:cornerRadius"
	dragScaleKey            = "xdragdrop:dragScale"
	otherScaleKey           = "xdragdrop:otherScale"
	proxyAlphaKey           = "xdragdrop:proxyAlpha"
	dragBeganOffsetYKey     = "xdragdrop:dragBeganOffsetY"
	minimumPressDurationKey = "xdragdrop:minimumPressDurationMs"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid drag and drop config")

// Config holds the drag parameters of a Stack. It is copied in at
// construction and never changed afterwards.
type Config struct {
	// ClipsToBounds keeps the dragged proxy inside the stack while dragging.
	ClipsToBounds bool
	// CornerRadius rounds the proxy's background.
	CornerRadius float32
	// DragScale is applied to the proxy while it follows the pointer.
	DragScale float32
	// OtherScale is applied to every item that is not being dragged.
	OtherScale float32
	// ProxyAlpha is the proxy opacity while dragging, 0 to 1.
	ProxyAlpha float32
	// DragBeganOffsetY nudges the proxy down when the drag starts.
	DragBeganOffsetY float32
	// MinimumPressDuration is how long a press must be held before a drag begins.
	MinimumPressDuration time.Duration
}

// DefaultConfig returns the stock drag parameters.
func DefaultConfig() Config {
	return Config{
		ClipsToBounds:        false,
		CornerRadius:         8,
		DragScale:            1.2,
		OtherScale:           0.9,
		ProxyAlpha:           0.85,
		DragBeganOffsetY:     4,
		MinimumPressDuration: 200 * time.Millisecond,
	}
}

// Validate reports the first parameter that is out of range.
func (c Config) Validate() error {
	switch {
	case c.CornerRadius < 0:
		return fmt.Errorf("%w: corner radius %v is negative", ErrInvalidConfig, c.CornerRadius)
	case c.DragScale <= 0:
		return fmt.Errorf("%w: drag scale %v must be positive", ErrInvalidConfig, c.DragScale)
	case c.OtherScale <= 0:
		return fmt.Errorf("%w: other scale %v must be positive", ErrInvalidConfig, c.OtherScale)
	case c.ProxyAlpha < 0 || c.ProxyAlpha > 1:
		return fmt.Errorf("%w: proxy alpha %v is outside [0, 1]", ErrInvalidConfig, c.ProxyAlpha)
	case c.MinimumPressDuration < 0:
		return fmt.Errorf("%w: minimum press duration %v is negative", ErrInvalidConfig, c.MinimumPressDuration)
	}
	return nil
}

// configFile mirrors Config for TOML. Missing keys keep their defaults.
type configFile struct {
	ClipsToBounds        *bool    `toml:"clips_to_bounds"`
	CornerRadius         *float32 `toml:"corner_radius"`
	DragScale            *float32 `toml:"drag_scale"`
	OtherScale           *float32 `toml:"other_scale"`
	ProxyAlpha           *float32 `toml:"proxy_alpha"`
	DragBeganOffsetY     *float32 `toml:"drag_began_offset_y"`
	MinimumPressDuration *string  `toml:"minimum_press_duration"`
}

// ParseConfig decodes a TOML document on top of DefaultConfig.
//
//	drag_scale = 1.1
//	minimum_press_duration = "350ms"
func ParseConfig(data []byte) (Config, error) {
	var file configFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return Config{}, fmt.Errorf("decode drag and drop config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}

	c := DefaultConfig()
	if file.ClipsToBounds != nil {
		c.ClipsToBounds = *file.ClipsToBounds
	}
	if file.CornerRadius != nil {
		c.CornerRadius = *file.CornerRadius
	}
	if file.DragScale != nil {
		c.DragScale = *file.DragScale
	}
	if file.OtherScale != nil {
		c.OtherScale = *file.OtherScale
	}
	if file.ProxyAlpha != nil {
		c.ProxyAlpha = *file.ProxyAlpha
	}
	if file.DragBeganOffsetY != nil {
		c.DragBeganOffsetY = *file.DragBeganOffsetY
	}
	if file.MinimumPressDuration != nil {
		d, err := time.ParseDuration(*file.MinimumPressDuration)
		if err != nil {
			return Config{}, fmt.Errorf("%w: minimum_press_duration: %v", ErrInvalidConfig, err)
		}
		c.MinimumPressDuration = d
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfigFile reads and parses a TOML config from path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read drag and drop config: %w", err)
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadConfigPreferences reads a config previously stored with
// SaveConfigPreferences, using fallback for anything not stored. Stored values
// that fail validation are ignored in favour of fallback.
func LoadConfigPreferences(p fyne.Preferences, fallback Config) Config {
	c := Config{
		ClipsToBounds:        p.BoolWithFallback(clipsToBoundsKey, fallback.ClipsToBounds),
		CornerRadius:         float32(p.FloatWithFallback(cornerRadiusKey, float64(fallback.CornerRadius))),
		DragScale:            float32(p.FloatWithFallback(dragScaleKey, float64(fallback.DragScale))),
		OtherScale:           float32(p.FloatWithFallback(otherScaleKey, float64(fallback.OtherScale))),
		ProxyAlpha:           float32(p.FloatWithFallback(proxyAlphaKey, float64(fallback.ProxyAlpha))),
		DragBeganOffsetY:     float32(p.FloatWithFallback(dragBeganOffsetYKey, float64(fallback.DragBeganOffsetY))),
		MinimumPressDuration: time.Duration(p.IntWithFallback(minimumPressDurationKey, int(fallback.MinimumPressDuration/time.Millisecond))) * time.Millisecond,
	}
	if err := c.Validate(); err != nil {
		fyne.LogError("ignoring stored drag and drop preferences", err)
		return fallback
	}
	return c
}

// SaveConfigPreferences stores c so LoadConfigPreferences can restore it.
func SaveConfigPreferences(p fyne.Preferences, c Config) {
	p.SetBool(clipsToBoundsKey, c.ClipsToBounds)
	p.SetFloat(cornerRadiusKey, float64(c.CornerRadius))
	p.SetFloat(dragScaleKey, float64(c.DragScale))
	p.SetFloat(otherScaleKey, float64(c.OtherScale))
	p.SetFloat(proxyAlphaKey, float64(c.ProxyAlpha))
	p.SetFloat(dragBeganOffsetYKey, float64(c.DragBeganOffsetY))
	p.SetInt(minimumPressDurationKey, int(c.MinimumPressDuration/time.Millisecond))
}
