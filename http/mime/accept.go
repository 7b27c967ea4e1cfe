package mime

import (
	"strings"
)

const wildcard = "*"

// Accept is an ordered list of MIME tokens, as they appeared in the header. Quality
// values and any other parameters are dropped. Malformed entries are kept as is, they
// just never match anything.
type Accept []string

// ParseAccept splits the header value by commas, keeping only the part before the first
// semicolon of each entry. Blank entries are skipped.
func ParseAccept(header string) Accept {
	if len(header) == 0 {
		return Accept{}
	}

	accept := make(Accept, 0, strings.Count(header, ",")+1)

	for len(header) > 0 {
		var entry string
		entry, header, _ = strings.Cut(header, ",")
		entry, _, _ = strings.Cut(entry, ";")
		if entry = strings.TrimSpace(entry); len(entry) > 0 {
			accept = append(accept, entry)
		}
	}

	return accept
}

// Contains tells whether the candidate is acceptable. The candidate is either a full
// type/subtype pair or a single bare token, which matches either half of an entry.
// In the same way, a bare token entry matches either half of the candidate, and a
// wildcard half of an entry (text/*) matches anything. Catch-all entries (*/* and *)
// never match: they carry no preference.
func (a Accept) Contains(candidate string) bool {
	ctype, csubtype, cfull := strings.Cut(candidate, "/")

	for _, entry := range a {
		if entry == "*/*" || entry == wildcard {
			continue
		}

		etype, esubtype, efull := strings.Cut(entry, "/")

		switch {
		case !cfull:
			if ctype == etype || (efull && ctype == esubtype) {
				return true
			}
		case !efull:
			if etype == ctype || etype == csubtype {
				return true
			}
		default:
			if halfMatches(etype, ctype) && halfMatches(esubtype, csubtype) {
				return true
			}
		}
	}

	return false
}

// ContainsAny tells whether at least one of the candidates is acceptable.
func (a Accept) ContainsAny(candidates ...string) bool {
	for _, candidate := range candidates {
		if a.Contains(candidate) {
			return true
		}
	}

	return false
}

// Matches is an alias for ContainsAny, used in conditions reading like "accept matches
// json or xml".
func (a Accept) Matches(candidates ...string) bool {
	return a.ContainsAny(candidates...)
}

// Default picks a single MIME to respond with: text/html if it's acceptable, otherwise
// the first entry without wildcards. If nothing suits, text/html is returned anyway, as
// it's the safest guess for browsers sending wildcard-only headers.
func (a Accept) Default() MIME {
	if a.Contains(HTML) {
		return HTML
	}

	for _, entry := range a {
		if !strings.Contains(entry, wildcard) {
			return entry
		}
	}

	return HTML
}

func halfMatches(entry, candidate string) bool {
	return entry == candidate || entry == wildcard
}
