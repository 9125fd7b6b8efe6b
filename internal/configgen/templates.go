package configgen

import (
	"embed"
	"fmt"
)

//go:embed templates/*.toml.tmpl
var templateFS embed.FS

// Template names, relative to the embedded templates directory.
const (
	templatePool           = "pool.toml.tmpl"
	templateJDS            = "jds.toml.tmpl"
	templateJDC            = "jdc.toml.tmpl"
	templateTranslatorJDC  = "translator-jdc.toml.tmpl"
	templateTranslatorPool = "translator-pool.toml.tmpl"
)

// Template returns the raw text of an embedded template.
func Template(name string) (string, error) {
	b, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return string(b), nil
}

func mustTemplate(name string) string {
	t, err := Template(name)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	poolTemplate           = mustTemplate(templatePool)
	jdsTemplate            = mustTemplate(templateJDS)
	jdcTemplate            = mustTemplate(templateJDC)
	translatorJDCTemplate  = mustTemplate(templateTranslatorJDC)
	translatorPoolTemplate = mustTemplate(templateTranslatorPool)
)
