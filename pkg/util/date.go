package util

import (
	"strings"
	"time"
)

// dateTpl maps template placeholders to Go layout elements. Longer
// placeholders come first so YYYY is not read as YY twice.
var dateTpl = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"hh", "15",
	"mm", "04",
	"ss", "05",
)

// FormatDateTpl formats t using a template with placeholders:
// YYYY, YY, MM, DD, hh, mm and ss. A zero time formats as "".
//
//	FormatDateTpl(t, "YYYY.MM.DD")       // "2023.11.10"
//	FormatDateTpl(t, "YYYY-MM-DD hh:mm") // "2023-11-10 00:00"
func FormatDateTpl(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTpl.Replace(tpl))
}
