package config

// Styles lists the representation styles the embedded viewer understands.
var Styles = []Style{StyleCartoon, StyleStick, StyleSphere, StyleLine}

// ColorSchemes lists the color schemes the embedded viewer understands.
var ColorSchemes = []ColorScheme{ColorSpectrum, ColorChain, ColorElement, ColorResidue}

// DefaultIncludes are glob patterns matched against the examples directory.
var DefaultIncludes = []string{
	"**/*.cif",
	"**/*.mmcif",
	"**/*.pdb",
	"**/*.ent",
}

// DefaultExcludes are glob patterns excluded from the examples gallery.
var DefaultExcludes = []string{
	"**/.*",
	"**/*.gz",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:        8080,
		DataDir:     ".cifview",
		MaxUploadMB: 64,
		ExamplesDir: "examples",
		Include:     DefaultIncludes,
		Exclude:     DefaultExcludes,
		Viewer: ViewerOptions{
			Style:      StyleCartoon,
			Color:      ColorSpectrum,
			ShowHetero: true,
			Background: "#ffffff",
			Opacity:    1.0,
		},
	}
}
