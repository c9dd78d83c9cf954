package querycache

import "strings"

// Key identifies a cached read: the caller scope plus a logical query name
// and its parameters, e.g. {Scope: "auth0|42", Parts: ["projects", "7"]}.
type Key struct {
	Scope string
	Parts []string
}

func NewKey(scope string, parts ...string) Key {
	return Key{Scope: scope, Parts: parts}
}

func (k Key) String() string {
	return k.Scope + "\x00" + strings.Join(k.Parts, "\x00")
}

// HasPrefix reports whether the key's parts start with prefix. Scope is not
// considered.
func (k Key) HasPrefix(prefix []string) bool {
	if len(prefix) > len(k.Parts) {
		return false
	}
	for i, p := range prefix {
		if k.Parts[i] != p {
			return false
		}
	}
	return true
}
