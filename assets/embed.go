package assets

import "embed"

//go:embed words.yaml
var FS embed.FS

// DefaultWords returns the embedded word catalog seed (YAML).
func DefaultWords() ([]byte, error) {
	return FS.ReadFile("words.yaml")
}
