// Package translate localizes the messages of the SIASM tools.
//
// Every diagnostic and console report line is an en-US format string,
// printed through a message printer chosen from the user's locales.
package translate

import (
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// fallbackLocale is matched when none of the user's locales are.
const fallbackLocale = "en-US"

var printer = newPrinter()

func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("siasm: locale: %v", err)
	}

	locales = append(locales, fallbackLocale)

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats an en-US format string in the user's language.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintln formats an en-US format string in the user's language and writes
// it to w as a single line.
func Fprintln(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return io.WriteString(w, printer.Sprintf(key, args...)+"\n")
}
