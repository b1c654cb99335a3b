// Package translate formats user visible messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("busarch: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	use(message.MatchLanguage(locales...))
}

func use(lang language.Tag) {
	tag = lang
	printer = message.NewPrinter(lang)
}

// Language returns the tag messages are formatted for.
func Language() language.Tag {
	return tag
}

// SetLanguage overrides the system locale with a BCP 47 tag, like "de-CH".
// Messages already formatted keep their language.
func SetLanguage(lang string) (err error) {
	parsed, err := language.Parse(lang)
	if err != nil {
		return
	}

	use(parsed)
	return
}

// From formats an en-US Sprintf() style key in the current locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
