package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// domainsShape tags which JSON shape allowed_domains arrived in.
type domainsShape int

const (
	domainsAbsent domainsShape = iota // missing or null
	domainsList                       // JSON array
	domainsCSV                        // comma-separated string
	domainsOther                      // number, bool, object
)

// DomainsInput is the request-side form of allowed_domains. Clients send a JSON
// array of strings, a single comma-separated string, or nothing at all;
// Normalize resolves every shape to one ordered list.
//
// Decoding never fails: shapes that cannot carry domains resolve to an empty
// list, so a bad allowed_domains value never turns into a 400.
type DomainsInput struct {
	shape domainsShape
	list  []any
	csv   string
}

// DomainsFromList builds an input as if the client sent a JSON array.
func DomainsFromList(items ...string) DomainsInput {
	list := make([]any, len(items))
	for i, s := range items {
		list[i] = s
	}
	return DomainsInput{shape: domainsList, list: list}
}

// DomainsFromCSV builds an input as if the client sent a comma-separated string.
func DomainsFromCSV(s string) DomainsInput {
	return DomainsInput{shape: domainsCSV, csv: s}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DomainsInput) UnmarshalJSON(b []byte) error {
	*d = DomainsInput{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			d.shape = domainsOther
			return nil
		}
		d.shape, d.csv = domainsCSV, s
	case '[':
		var list []any
		if err := json.Unmarshal(b, &list); err != nil {
			d.shape = domainsOther
			return nil
		}
		d.shape, d.list = domainsList, list
	default:
		d.shape = domainsOther
	}
	return nil
}

// IsSet reports whether the client sent a non-null value.
func (d DomainsInput) IsSet() bool { return d.shape != domainsAbsent }

// Normalize returns the canonical ordered list of domains. Entries are trimmed
// and empty entries are dropped; array items that are not strings are skipped.
// The result is never nil.
func (d DomainsInput) Normalize() []string {
	switch d.shape {
	case domainsCSV:
		return SplitDomains(d.csv)
	case domainsList:
		out := make([]string, 0, len(d.list))
		for _, v := range d.list {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// SplitDomains splits a comma-separated list, trims each piece, and drops empty
// pieces while keeping order: "a.com, b.com,, c.com" → [a.com b.com c.com].
func SplitDomains(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
