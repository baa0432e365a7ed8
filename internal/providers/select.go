package providers

import (
	"fmt"
	"sort"
	"strings"
)

// Factory builds an extractor for a given chapter page URL.
type Factory func(pageURL string) Extractor

var registry = map[string]Factory{}

// Register makes a provider available under name. It is meant to be called
// from init functions of provider packages.
func Register(name string, f Factory) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || f == nil {
		panic("providers: invalid registration")
	}
	if _, dup := registry[name]; dup {
		panic("providers: duplicate provider " + name)
	}

	registry[name] = f
}

func Select(name, pageURL string) (Extractor, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %s)", name, strings.Join(Names(), ", "))
	}

	return f(pageURL), nil
}

func Known(name string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}
