package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NoticeEntry is one keyed element of a NoticePage
type NoticeEntry struct {
	Key    string
	Notice NoticeSummary
}

// NoticePage is the ordered keyed listing envelope of GET /boards.
// The zero value is an empty page.
type NoticePage struct {
	entries []NoticeEntry
}

// NewNoticePage builds a page from entries in the given order
func NewNoticePage(entries ...NoticeEntry) NoticePage {
	out := make([]NoticeEntry, len(entries))
	copy(out, entries)
	return NoticePage{entries: out}
}

// Len returns the number of entries
func (p NoticePage) Len() int {
	return len(p.entries)
}

// Keys returns the entry keys in order
func (p NoticePage) Keys() []string {
	keys := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns a copy of the entries in order
func (p NoticePage) Entries() []NoticeEntry {
	out := make([]NoticeEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Notices returns the notices in order
func (p NoticePage) Notices() []NoticeSummary {
	out := make([]NoticeSummary, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.Notice)
	}
	return out
}

// Get returns the notice stored under key
func (p NoticePage) Get(key string) (NoticeSummary, bool) {
	for _, e := range p.entries {
		if e.Key == key {
			return e.Notice, true
		}
	}
	return NoticeSummary{}, false
}

// Window returns the entries at positions [offset, offset+limit), preserving key
// order. A negative offset starts at the first entry and a non-positive limit
// yields an empty page.
func (p NoticePage) Window(offset, limit int) NoticePage {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(p.entries) {
		return NoticePage{}
	}
	if rest := len(p.entries) - offset; limit > rest {
		limit = rest
	}
	return NewNoticePage(p.entries[offset : offset+limit]...)
}

// Filter returns the entries whose notice satisfies keep
func (p NoticePage) Filter(keep func(NoticeSummary) bool) NoticePage {
	out := make([]NoticeEntry, 0, len(p.entries))
	for _, e := range p.entries {
		if keep(e.Notice) {
			out = append(out, e)
		}
	}
	return NoticePage{entries: out}
}

// MarshalJSON encodes the page as a JSON object in entry order
func (p NoticePage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Notice)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the order of its keys.
// A JSON null decodes to an empty page.
func (p *NoticePage) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		p.entries = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("notice page: expected object, got %v", tok)
	}

	entries := make([]NoticeEntry, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("notice page: expected key, got %v", tok)
		}
		var n NoticeSummary
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("notice page: entry %q: %w", key, err)
		}
		entries = append(entries, NoticeEntry{Key: key, Notice: n})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	p.entries = entries
	return nil
}
