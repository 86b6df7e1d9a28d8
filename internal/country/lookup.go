// Package country resolves free-text country names to ISO 3166-1 alpha-2 codes.
package country

import (
	"strings"
	"sync"

	"github.com/biter777/countries"
)

var (
	byNameOnce sync.Once
	byName     map[string]string
)

// Code returns the alpha-2 code for a country name. Only the exact English
// name matches, ignoring case and surrounding spaces; codes, aliases and
// partial names are misses. A miss is not an error: callers must leave the
// code out of anything they send onward.
func Code(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	byNameOnce.Do(loadNames)
	code, ok := byName[name]
	return code, ok
}

func loadNames() {
	all := countries.All()
	byName = make(map[string]string, len(all))
	for _, c := range all {
		if !c.IsValid() {
			continue
		}
		key := strings.ToLower(c.String())
		if _, dup := byName[key]; !dup {
			byName[key] = c.Alpha2()
		}
	}
}
