package gowin

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the construction-time configuration of a window. The zero
// value is not useful; start from DefaultSettings.
type Settings struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`

	// Size is the initial physical outer size; the OS may round it.
	Size PhysicalSize `yaml:"size"`
	// Position is optional. When nil the OS picks.
	Position *PhysicalPosition `yaml:"position,omitempty"`

	Flow             Flow       `yaml:"flow"`
	Visibility       Visibility `yaml:"visibility"`
	Decorations      Visibility `yaml:"decorations"`
	Resizable        bool       `yaml:"resizable"`
	Fullscreen       Fullscreen `yaml:"fullscreen"`
	CursorMode       CursorMode `yaml:"cursor_mode"`
	CursorVisibility Visibility `yaml:"cursor_visibility"`
	CloseOnX         bool       `yaml:"close_on_x"`
	Theme            Theme      `yaml:"theme"`

	// TraceFile, when set, records every delivered event and executed
	// command for offline inspection.
	TraceFile string `yaml:"trace_file,omitempty"`

	// Logger receives the driver's diagnostics. Defaults to slog.Default.
	Logger *slog.Logger `yaml:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Title:            "Window",
		Size:             PhysicalSize{Width: 800, Height: 600},
		Flow:             Wait,
		Visibility:       Shown,
		Decorations:      Shown,
		Resizable:        true,
		Fullscreen:       Windowed,
		CursorMode:       CursorNormal,
		CursorVisibility: Shown,
		CloseOnX:         true,
		Theme:            ThemeAuto,
	}
}

func (s Settings) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// LoadSettings reads a settings file, filling unset fields from the
// defaults.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return s, nil
}

// Save writes the settings so a later LoadSettings restores them, which is
// how callers persist window placement across runs.
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// The enum fields persist as strings so settings files stay readable.

func (f Flow) String() string {
	if f == Poll {
		return "poll"
	}
	return "wait"
}

func (f Flow) MarshalYAML() (any, error) { return f.String(), nil }

func (f *Flow) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "wait":
		*f = Wait
	case "poll":
		*f = Poll
	default:
		return fmt.Errorf("unknown flow %q", node.Value)
	}
	return nil
}

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "shown"
}

func (v Visibility) MarshalYAML() (any, error) { return v.String(), nil }

func (v *Visibility) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "shown":
		*v = Shown
	case "hidden":
		*v = Hidden
	default:
		return fmt.Errorf("unknown visibility %q", node.Value)
	}
	return nil
}

func (f Fullscreen) String() string {
	if f == Borderless {
		return "borderless"
	}
	return "windowed"
}

func (f Fullscreen) MarshalYAML() (any, error) { return f.String(), nil }

func (f *Fullscreen) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "windowed":
		*f = Windowed
	case "borderless":
		*f = Borderless
	default:
		return fmt.Errorf("unknown fullscreen mode %q", node.Value)
	}
	return nil
}

func (m CursorMode) String() string {
	if m == CursorConfined {
		return "confined"
	}
	return "normal"
}

func (m CursorMode) MarshalYAML() (any, error) { return m.String(), nil }

func (m *CursorMode) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "normal":
		*m = CursorNormal
	case "confined":
		*m = CursorConfined
	default:
		return fmt.Errorf("unknown cursor mode %q", node.Value)
	}
	return nil
}

func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	default:
		return "auto"
	}
}

func (t Theme) MarshalYAML() (any, error) { return t.String(), nil }

func (t *Theme) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "auto":
		*t = ThemeAuto
	case "dark":
		*t = ThemeDark
	case "light":
		*t = ThemeLight
	default:
		return fmt.Errorf("unknown theme %q", node.Value)
	}
	return nil
}
