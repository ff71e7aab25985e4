// Package locales provides the embedded translation files for the tabsmith editor.
// It contains YAML files with translated strings (en, pt-BR) loaded through ctxi18n.
package locales

import "embed"

//go:embed en.yaml
//go:embed pt-BR.yaml

// Content is an embedded file system containing the locale files.
var Content embed.FS
