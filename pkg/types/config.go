package types

// GenerateConfig holds settings for the generate stage.
type GenerateConfig struct {
	// OutputDir is the directory generated .docx files are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// GuidesDir is an optional directory of extra or overriding guide files (*.md).
	GuidesDir string `json:"guides_dir,omitempty" yaml:"guides_dir,omitempty" mapstructure:"guides_dir"`

	// Strict rejects malformed tables instead of padding them.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`

	// Theme overrides the presentation defaults.
	Theme Theme `json:"theme" yaml:"theme" mapstructure:"theme"`
}

// RowPolicy returns the table row policy implied by Strict.
func (c GenerateConfig) RowPolicy() RowPolicy {
	if c.Strict {
		return RowReject
	}
	return RowPad
}

// CatalogConfig holds settings for the generation history store.
type CatalogConfig struct {
	// Path is the SQLite database file. Empty means <output_dir>/.opsdocs/catalog.db.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`

	// Disabled turns off recording of generation runs.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// ExportConfig holds settings for PDF export through a container runtime.
type ExportConfig struct {
	// Image is the LibreOffice container image used for conversion.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Runtime forces "docker" or "podman"; empty means auto-detect.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty" mapstructure:"runtime"`
}

// Config groups all opsdocs settings.
type Config struct {
	Generate GenerateConfig `json:"generate" yaml:"generate" mapstructure:"generate"`
	Catalog  CatalogConfig  `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Export   ExportConfig   `json:"export" yaml:"export" mapstructure:"export"`
}

// DefaultConfig returns the settings used when no config file or flag
// overrides them.
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			OutputDir: ".",
			Theme:     DefaultTheme(),
		},
		Export: ExportConfig{
			Image: "docker.io/linuxserver/libreoffice:latest",
		},
	}
}
