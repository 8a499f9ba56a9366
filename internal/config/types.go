package config

// Style identifies a molecular representation style of the embedded viewer.
type Style string

const (
	StyleCartoon Style = "cartoon"
	StyleStick   Style = "stick"
	StyleSphere  Style = "sphere"
	StyleLine    Style = "line"
)

// ColorScheme identifies how atoms are colored in the embedded viewer.
type ColorScheme string

const (
	ColorSpectrum ColorScheme = "spectrum"
	ColorChain    ColorScheme = "chain"
	ColorElement  ColorScheme = "element"
	ColorResidue  ColorScheme = "residue"
)

// ViewerOptions are the default rendering options handed to the browser
// viewer. Every field is a pass-through setting for the 3D embed.
type ViewerOptions struct {
	Style      Style       `yaml:"style" koanf:"style"`
	Color      ColorScheme `yaml:"color" koanf:"color"`
	Surface    bool        `yaml:"surface" koanf:"surface"`
	Sidechains bool        `yaml:"sidechains" koanf:"sidechains"`
	ShowHetero bool        `yaml:"show_hetero" koanf:"show_hetero"`
	Background string      `yaml:"background" koanf:"background"`
	Opacity    float64     `yaml:"opacity" koanf:"opacity"`
}

// Config is the top-level cifview configuration, corresponding to .cifview.yml.
type Config struct {
	Port        int           `yaml:"port" koanf:"port"`
	DataDir     string        `yaml:"data_dir" koanf:"data_dir"`
	MaxUploadMB int           `yaml:"max_upload_mb" koanf:"max_upload_mb"`
	AllowAll    bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ExamplesDir string        `yaml:"examples_dir" koanf:"examples_dir"`
	Include     []string      `yaml:"include" koanf:"include"`
	Exclude     []string      `yaml:"exclude" koanf:"exclude"`
	Viewer      ViewerOptions `yaml:"viewer" koanf:"viewer"`
}
