// Package i18n translates labeleer's own user-facing strings.
//
// Catalogs are gettext PO files embedded in the binary under
// locales/{lang}/LC_MESSAGES/labeleer.po, loaded once by Init with gotext.
// Strings without a translation are passed through unchanged.
//
//	i18n.Init("")  // LANGUAGE / LC_ALL / LC_MESSAGES / LANG
//	fmt.Printf(i18n.N("Fetched %d label\n", "Fetched %d labels\n", n), n)
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/leonelquinteros/gotext/plurals"
)

//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for labeleer.
const domain = "labeleer"

// catalog is the loaded message table of one language.
//
// Lookups read Translation values directly instead of going through
// gotext's Get/GetN, which format their result like fmt.Sprintf.
type catalog struct {
	messages map[string]*gotext.Translation
	plural   plurals.Expression // nil means the Germanic n != 1 rule
}

var active *catalog

// Init loads the catalog for lang. An empty lang is detected from the
// environment the way GNU gettext does it. A language without an
// embedded catalog leaves every string untranslated.
//
// Init is called once at startup, before any T or N call.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	active = load(lang)
}

func load(lang string) *catalog {
	loc := gotext.NewLocaleFSWithPath(lang, locales, "locales")
	loc.AddDomain(domain)

	tr, ok := loc.Domains[domain]
	if !ok || tr == nil {
		return nil
	}
	dom := tr.GetDomain()
	return &catalog{
		messages: dom.GetTranslations(),
		plural:   pluralRule(dom.PluralForms),
	}
}

// pluralRule compiles the plural= part of a Plural-Forms header.
func pluralRule(header string) plurals.Expression {
	for _, part := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(key) != "plural" {
			continue
		}
		if expr, err := plurals.Compile(strings.TrimSpace(value)); err == nil {
			return expr
		}
	}
	return nil
}

func (c *catalog) form(n int) int {
	if c.plural != nil {
		return c.plural.Eval(uint32(n))
	}
	if n == 1 {
		return 0
	}
	return 1
}

// T translates msgid. Untranslated strings are returned unchanged.
// Format directives are left for the caller:
//
//	fmt.Sprintf(i18n.T("Wrote %s to %s"), size, name)
func T(msgid string) string {
	if active == nil {
		return msgid
	}
	if tr, ok := active.messages[msgid]; ok {
		return tr.Get()
	}
	return msgid
}

// N translates a message with plural forms, choosing by n.
func N(singular, plural string, n int) string {
	if active != nil {
		if tr, ok := active.messages[singular]; ok {
			return tr.GetN(active.form(n))
		}
	}
	if n == 1 {
		return singular
	}
	return plural
}

// detectLanguage follows GNU gettext priority:
// LANGUAGE > LC_ALL > LC_MESSAGES > LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE is a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// "de_DE.UTF-8" -> "de_DE"
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
