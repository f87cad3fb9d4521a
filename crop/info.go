package crop

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultLanguage = "en"
	NotAvailable    = "N/A"
	NoDescription   = "Information not available"
)

// Info is the display record shown next to a recommendation.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Season      string `json:"season"`
	SoilType    string `json:"soil_type"`
	Tips        string `json:"tips"`
}

// LookupInfo returns the English record for label, or a placeholder record when
// the table has none.
func LookupInfo(label Label) (Info, bool) {
	if info, ok := infoTable[label]; ok {
		return info, true
	}
	return FallbackInfo(label), false
}

func FallbackInfo(label Label) Info {
	return Info{
		Name:        cases.Title(language.English).String(string(label)),
		Description: NoDescription,
		Season:      NotAvailable,
		SoilType:    NotAvailable,
		Tips:        NotAvailable,
	}
}

// DisplayName looks the name up in the curated per-language table. Names are
// never machine translated.
func DisplayName(label Label, lang string) (string, bool) {
	names, ok := displayNames[label]
	if !ok {
		return "", false
	}
	name, ok := names[lang]
	return name, ok && name != ""
}

func SupportedLanguages() map[string]string {
	result := make(map[string]string, len(supportedLanguages))
	for code, name := range supportedLanguages {
		result[code] = name
	}
	return result
}

// NormalizeLanguage maps user input such as "HI" or "hi-IN" to a supported base
// code. Empty input means the default language.
func NormalizeLanguage(code string) (string, bool) {
	if code == "" {
		return DefaultLanguage, true
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if _, ok := supportedLanguages[base.String()]; !ok {
		return "", false
	}
	return base.String(), true
}

// LanguageCode resolves the target code used for display. Supported inputs
// collapse to their base code; anything else is kept as given, trimmed and
// lowercased, so the translator can still try it and callers fall back to
// source text when it cannot.
func LanguageCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if normalized, ok := NormalizeLanguage(code); ok {
		return normalized
	}
	if tag, err := language.Parse(code); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	return code
}
