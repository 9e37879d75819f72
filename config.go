package scormconv

// Config holds all configuration for the converter.
type Config struct {
	// ManifestID is the identifier attribute of the SCORM manifest.
	ManifestID string `json:"manifest_id" yaml:"manifest_id"`

	// PackageTitle is the organization title an LMS displays for the package.
	PackageTitle string `json:"package_title" yaml:"package_title"`

	// ItemTitle is the title of the single launchable item.
	ItemTitle string `json:"item_title" yaml:"item_title"`

	// PageTitle is the <title> of the generated index.html.
	PageTitle string `json:"page_title" yaml:"page_title"`

	// MaxUploadBytes caps the size of uploads accepted by the server
	// frontend. The core library does not enforce it.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// DefaultConfig returns a Config with the stock package metadata.
func DefaultConfig() Config {
	return Config{
		ManifestID:     "com.example.scorm",
		PackageTitle:   "LaTeX to SCORM Converter",
		ItemTitle:      "Main Page",
		PageTitle:      "Converted Document",
		MaxUploadBytes: 100 << 20,
	}
}
