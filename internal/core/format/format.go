// Package format holds the pure presentation helpers of the client: currency,
// dates, countdown clocks and the localized rendering of errors.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol = "₫"
	dateLayout     = "02/01/2006 15:04"
)

type Formatter struct {
	lang    language.Tag
	printer *message.Printer
}

// New returns a Formatter for the given BCP 47 tag. Unparseable tags fall
// back to Vietnamese.
func New(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Vietnamese
	}
	return &Formatter{lang: tag, printer: message.NewPrinter(tag)}
}

func (f *Formatter) Language() language.Tag { return f.lang }

// Currency renders an amount of dong with locale digit grouping,
// e.g. "1.250.000 ₫" in Vietnamese.
func (f *Formatter) Currency(amount int64) string {
	return f.printer.Sprintf("%d %s", amount, currencySymbol)
}

func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

// Clock renders a remaining duration as MM:SS, clamping negatives to zero.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
