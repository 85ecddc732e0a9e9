package locale

import "fmt"

const Default = "en"

var catalogs = map[string]map[string]string{
	Default: english,
}

// Register installs a translation catalog. Keys missing from a registered
// catalog fall back to English.
func Register(lang string, catalog map[string]string) {
	catalogs[lang] = catalog
}

// Text looks up a reply string by key in the given language and formats it.
// Unknown keys are returned as-is so a missing translation never hides a
// reply entirely.
func Text(lang, key string, args ...any) string {
	catalog, ok := catalogs[lang]
	if !ok {
		catalog = english
	}

	format, ok := catalog[key]
	if !ok {
		format, ok = english[key]
		if !ok {
			return key
		}
	}

	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}
