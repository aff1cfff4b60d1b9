// Package locale classifies locale-like strings (ISO 639-1 language codes,
// BCP 47 tags and POSIX-style identifiers) into the canonical form used by
// labeleer, e.g. "en_US", "pt_BR" or "zh_Hant_TW".
//
// Language data (likely regions, native names) comes from
// golang.org/x/text so no per-language table has to be maintained here.
package locale

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrInvalidLocale is returned when a string cannot be read as a locale.
var ErrInvalidLocale = errors.New("invalid locale")

// canonicalRe matches language[_Script]_REGION with a lower-case language,
// title-case script and an upper-case or UN M.49 numeric region.
var canonicalRe = regexp.MustCompile(`^[a-z]{2,3}(?:_[A-Z][a-z]{3})?_(?:[A-Z]{2}|[0-9]{3})$`)

// Classify converts raw into a canonical locale identifier.
//
// A bare two-letter language code maps to the language's most likely
// region ("fr" -> "fr_FR"). Identifiers already in canonical form are
// returned unchanged. Any other well-formed BCP 47 tag is rewritten with
// underscores, keeping an explicit script and filling in a missing region.
func Classify(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidLocale)
	}

	// Language codes first: "de" is not a canonical identifier, it needs a region.
	if isLanguageCode(s) {
		if loc, ok := defaultLocale(s); ok {
			return loc, nil
		}
	}

	if IsCanonical(s) {
		return s, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, raw)
	}
	loc, ok := fromTag(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q has no usable language or region", ErrInvalidLocale, raw)
	}
	return loc, nil
}

// IsCanonical reports whether s is already a canonical locale identifier
// naming a known language.
func IsCanonical(s string) bool {
	if !canonicalRe.MatchString(s) {
		return false
	}
	_, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	return err == nil
}

// DisplayName returns the native name of the language behind raw
// ("de" -> "Deutsch"), or raw itself when it is not a known locale.
func DisplayName(raw string) string {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	if err != nil {
		return raw
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return raw
}

func isLanguageCode(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z'
}

// defaultLocale maps an ISO 639-1 code to language_REGION using the
// likely-subtags data.
func defaultLocale(code string) (string, bool) {
	base, err := language.ParseBase(code)
	if err != nil {
		return "", false
	}
	tag, err := language.Compose(base)
	if err != nil {
		return "", false
	}
	region, conf := tag.Region()
	if conf == language.No {
		return "", false
	}
	return base.String() + "_" + region.String(), true
}

func fromTag(tag language.Tag) (string, bool) {
	base, script, region := tag.Raw()
	if base.String() == "und" {
		return "", false
	}

	if region.String() == "ZZ" {
		likely, conf := tag.Region()
		if conf == language.No {
			return "", false
		}
		region = likely
	}

	parts := []string{base.String()}
	if script.String() != "Zzzz" {
		parts = append(parts, script.String())
	}
	parts = append(parts, region.String())
	return strings.Join(parts, "_"), true
}
