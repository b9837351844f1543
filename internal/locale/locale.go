// Package locale derives the active locale from a page path and builds
// locale-prefixed paths. Locale identifiers are taken verbatim: nothing here
// rejects or normalizes an unknown code.
package locale

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// rtlLanguages lists base languages written right-to-left.
var rtlLanguages = []string{"ar", "he", "ur", "yi", "ji", "iw", "fa"}

// FromPath returns the first segment of a URL path.
// "/fr/dashboard" yields "fr"; "/" and "" yield "".
func FromPath(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) < 2 {
		return ""
	}
	return segments[1]
}

// Prefix returns "/" + code + path. The path is expected to start with "/";
// it is not repaired if it doesn't.
func Prefix(code, path string) string {
	return "/" + code + path
}

// Info describes a locale code for display purposes.
type Info struct {
	Code string // as found in the path
	Name string // self-name, e.g. "Français"; Code when unknown
	RTL  bool
}

// Describe returns display information for code. Unknown or malformed codes
// are described by their code alone.
func Describe(code string) Info {
	info := Info{Code: code, Name: code, RTL: isRTL(code)}
	if code == "" {
		return info
	}

	tag, err := language.Parse(code)
	if err != nil {
		return info
	}

	if name := display.Self.Name(tag); name != "" {
		info.Name = cases.Title(tag).String(name)
	}
	if base, conf := tag.Base(); conf != language.No && slices.Contains(rtlLanguages, base.String()) {
		info.RTL = true
	}
	return info
}

// Dir returns the HTML dir attribute value for the locale.
func (i Info) Dir() string {
	if i.RTL {
		return "rtl"
	}
	return "ltr"
}

func isRTL(code string) bool {
	primary, _, _ := strings.Cut(strings.ReplaceAll(code, "_", "-"), "-")
	return slices.Contains(rtlLanguages, strings.ToLower(primary))
}
