package feed

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&#34;",
)

// Escape makes s safe as XML/HTML text or attribute value.
//
// Only the first '/' becomes "&#x2F;", later ones are left alone. Feeds in
// the wild were generated this way and readers already cache entries keyed
// on that output, so changing it is a visible change to every feed.
func Escape(s string) string {
	s = textEscaper.Replace(s)
	return strings.Replace(s, "/", "&#x2F;", 1)
}

// escapeURL keeps a URL byte for byte unless it contains markup characters,
// which would otherwise break the attribute it is placed in.
func escapeURL(u string) string {
	return html.EscapeString(u)
}

// CapitalizeFirstLowerRest upper-cases the first rune of s and lower-cases
// the rest: "VIDEO" -> "Video", "song" -> "Song".
func CapitalizeFirstLowerRest(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
