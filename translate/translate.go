// Package translate renders user-facing messages in the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("sym6502: locale: %v", err)
	}

	SetLocales(locales...)
}

// SetLocales selects the message language from locales, most preferred
// first. With no locales, en-US is used. Messages already rendered, such as
// the sentinel errors, keep their language.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
