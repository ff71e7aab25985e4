package config

import (
	"github.com/OliveiraNt/tabsmith/locales"
	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
)

// InitI18n loads the embedded locales, falling back to defaultLang.
func InitI18n(defaultLang string) error {
	return ctxi18n.LoadWithDefault(locales.Content, i18n.Code(defaultLang))
}
