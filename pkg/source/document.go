package source

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Document mutations.
var (
	ErrOutOfRange  = errors.New("line index out of range")
	ErrUnknownLine = errors.New("unknown line id")
)

// LineID identifies a line for the lifetime of a Document.
// IDs are never reused, so an ID taken before an edit stays valid after it.
type LineID int

// Line is one physical line without its terminator.
type Line struct {
	ID   LineID
	Text string

	crlf bool
}

// Document is an editable sequence of lines.
type Document struct {
	lines           []Line
	nextID          LineID
	crlf            bool
	trailingNewline bool
}

// Parse splits text into a Document. Each line keeps its own terminator and
// the final newline is remembered, so String reproduces untouched text
// byte for byte. Inserted lines use CRLF when the text contained any.
func Parse(text string) *Document {
	d := &Document{trailingNewline: true}
	if text == "" {
		return d
	}
	d.crlf = strings.Contains(text, "\r\n")
	d.trailingNewline = strings.HasSuffix(text, "\n")
	raws := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, raw := range raws {
		terminated := i < len(raws)-1 || d.trailingNewline
		crlf := terminated && strings.HasSuffix(raw, "\r")
		if crlf {
			raw = raw[:len(raw)-1]
		}
		d.lines = append(d.lines, Line{ID: d.newID(), Text: raw, crlf: crlf})
	}
	return d
}

func (d *Document) newID() LineID {
	id := d.nextID
	d.nextID++
	return id
}

// String renders the document.
func (d *Document) String() string {
	if len(d.lines) == 0 {
		return ""
	}
	var b strings.Builder
	last := len(d.lines) - 1
	for i, l := range d.lines {
		b.WriteString(l.Text)
		if i == last && !d.trailingNewline {
			break
		}
		if l.crlf {
			b.WriteByte('\r')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns the line at 0-based index i.
func (d *Document) Line(i int) Line { return d.lines[i] }

// Text returns the text at 0-based index i.
func (d *Document) Text(i int) string { return d.lines[i].Text }

// Texts returns a copy of every line's text.
func (d *Document) Texts() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.Text
	}
	return out
}

// IndexOf returns the current 0-based index of id.
func (d *Document) IndexOf(id LineID) (int, error) {
	for i, l := range d.lines {
		if l.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrUnknownLine, id)
}

// InsertAt inserts texts so the first one lands at 0-based index idx.
// idx may equal Len to append.
func (d *Document) InsertAt(idx int, texts ...string) ([]LineID, error) {
	if idx < 0 || idx > len(d.lines) {
		return nil, fmt.Errorf("%w: insert at %d of %d", ErrOutOfRange, idx, len(d.lines))
	}
	if idx == len(d.lines) && idx > 0 && d.crlf {
		d.lines[idx-1].crlf = true
	}
	ids := make([]LineID, len(texts))
	added := make([]Line, len(texts))
	for i, t := range texts {
		ids[i] = d.newID()
		added[i] = Line{ID: ids[i], Text: t, crlf: d.crlf}
	}
	tail := append(added, d.lines[idx:]...)
	d.lines = append(d.lines[:idx], tail...)
	return ids, nil
}

// InsertAfter inserts texts directly after the line with the given id.
func (d *Document) InsertAfter(id LineID, texts ...string) ([]LineID, error) {
	idx, err := d.IndexOf(id)
	if err != nil {
		return nil, err
	}
	return d.InsertAt(idx+1, texts...)
}

// Remove deletes the lines with the given ids and returns their texts in
// document order. Every id must exist; on error nothing is removed.
func (d *Document) Remove(ids ...LineID) ([]string, error) {
	drop := make(map[LineID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	found := 0
	for _, l := range d.lines {
		if drop[l.ID] {
			found++
		}
	}
	if found != len(drop) {
		return nil, fmt.Errorf("%w: %d of %d ids present", ErrUnknownLine, found, len(drop))
	}

	removed := make([]string, 0, len(drop))
	kept := d.lines[:0]
	for _, l := range d.lines {
		if drop[l.ID] {
			removed = append(removed, l.Text)
			continue
		}
		kept = append(kept, l)
	}
	d.lines = kept
	return removed, nil
}

// SetText replaces the text of the line at 0-based index i, keeping its ID.
func (d *Document) SetText(i int, text string) error {
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("%w: set %d of %d", ErrOutOfRange, i, len(d.lines))
	}
	d.lines[i].Text = text
	return nil
}
