// Package intent maps free-text demo input onto VMP memory operations with a
// fixed, ordered rule table. It exists to keep the vmpctl demo deterministic;
// it is not part of the protocol client and performs no inference.
package intent

import (
	"regexp"
	"strings"

	"github.com/vemorak/vemorak-go/vmp"
)

// Kind discriminates the extracted intent variants.
type Kind string

const (
	KindWrite   Kind = "write"
	KindDelete  Kind = "delete"
	KindRecall  Kind = "recall"
	KindUnknown Kind = "unknown"
)

// UnknownHint is returned verbatim whenever no rule matches.
const UnknownHint = `Try: "Remember that I prefer ...", "Remember that ...", "Forget <key>", or "What do you remember?"`

// Intent is the outcome of one extraction. Exactly the fields of the matched
// variant are populated: Memory for writes, TargetKey and TargetType for
// deletes, Hint for unknown.
type Intent struct {
	Kind       Kind
	Scope      string
	Memory     vmp.MemoryObject
	TargetType vmp.MemoryType
	TargetKey  string
	Hint       string
}

var (
	recallPattern     = regexp.MustCompile(`(?i)\bwhat do you remember\b|^\s*recall\b`)
	forgetPattern     = regexp.MustCompile(`(?i)^\s*forget\s+(?:that\s+|about\s+)?(.+?)\s*$`)
	preferencePattern = regexp.MustCompile(`(?i)^\s*remember\s+that\s+i\s+prefer\s+(.+?)\s*$`)
	factPattern       = regexp.MustCompile(`(?i)^\s*remember\s+that\s+(.+?)\s*$`)
)

// Extract maps text and a scope to an intent. Rules are tried in a fixed
// order and the first match wins, so identical input always yields an
// identical intent.
func Extract(text, scope string) Intent {
	if m := recallPattern.FindStringSubmatch(text); m != nil {
		return Intent{Kind: KindRecall, Scope: scope}
	}

	if m := forgetPattern.FindStringSubmatch(text); m != nil {
		key := slug(m[1])
		if key != "" {
			return Intent{
				Kind:       KindDelete,
				Scope:      scope,
				TargetType: vmp.MemoryTypePreference,
				TargetKey:  key,
			}
		}
	}

	if m := preferencePattern.FindStringSubmatch(text); m != nil {
		value := trimSentence(m[1])
		if pref, err := vmp.NewPreference(slug(value), value); err == nil {
			return Intent{Kind: KindWrite, Scope: scope, Memory: pref}
		}
	}

	if m := factPattern.FindStringSubmatch(text); m != nil {
		fact := trimSentence(m[1])
		if obj, err := vmp.NewProfileFact(slug(fact), fact); err == nil {
			return Intent{Kind: KindWrite, Scope: scope, Memory: obj}
		}
	}

	return Intent{Kind: KindUnknown, Scope: scope, Hint: UnknownHint}
}

const maxSlugLen = 48

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// slug derives a deterministic memory key from captured text.
func slug(text string) string {
	s := strings.ToLower(trimSentence(text))
	s = slugSeparator.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxSlugLen {
		s = strings.Trim(s[:maxSlugLen], "_")
	}
	return s
}

func trimSentence(text string) string {
	return strings.Trim(strings.TrimSpace(text), ".!?")
}
