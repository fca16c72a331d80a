package partition

import "strings"

// DefaultNamespace is the global prefix all note partitions live under.
const DefaultNamespace = "notes/"

// Resolver maps an owner identity to its storage partition prefix. It is a
// pure value: resolution never touches the store.
type Resolver struct {
	namespace string
}

// NewResolver creates a Resolver rooted at the given namespace prefix.
// An empty namespace falls back to DefaultNamespace; a missing trailing
// separator is added.
func NewResolver(namespace string) Resolver {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if !strings.HasSuffix(namespace, "/") {
		namespace += "/"
	}
	return Resolver{namespace: namespace}
}

// Resolve returns the partition prefix for the given identity. Every rune
// outside [A-Za-z0-9@._-] is replaced with '_', so the result is always a
// safe object key segment. Two identities that differ only in substituted
// runes can collide; the raw identity is persisted inside each note blob,
// which makes such a collision detectable after the fact.
func (r Resolver) Resolve(identity string) string {
	var b strings.Builder
	b.Grow(len(r.namespace) + len(identity) + 1)
	b.WriteString(r.namespace)
	for _, c := range identity {
		if safeRune(c) {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('/')
	return b.String()
}

// Key returns the blob key for a note id within the identity's partition.
func (r Resolver) Key(identity, id string) string {
	return r.Resolve(identity) + id + ".json"
}

func safeRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '@' || c == '.' || c == '_' || c == '-':
		return true
	}
	return false
}
