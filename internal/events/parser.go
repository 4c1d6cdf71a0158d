// Package events parses the game-event schema sources and emits the
// paired accessor bindings consumed by the plugin runtime.
package events

import (
	"log/slog"
	"strings"
)

// Field is a single typed event field.
type Field struct {
	Name    string
	Type    string
	Comment string
}

// Event is a named record of typed fields. Fields keep their source
// declaration order.
type Event struct {
	Name    string
	Comment string

	fields map[string]*Field
	order  []string
	// nested is set when the event's block declares other events.
	nested bool
}

func newEvent(name string) *Event {
	return &Event{Name: name, fields: make(map[string]*Field)}
}

// Fields returns the event's fields in declaration order.
func (e *Event) Fields() []*Field {
	out := make([]*Field, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.fields[name])
	}
	return out
}

// Field looks up a field by name.
func (e *Event) Field(name string) (*Field, bool) {
	f, ok := e.fields[name]
	return f, ok
}

// add inserts a field unless one with the same name already exists.
// An existing field's type and comment are never overwritten.
func (e *Event) add(f *Field) {
	if _, ok := e.fields[f.Name]; ok {
		return
	}
	e.fields[f.Name] = f
	e.order = append(e.order, f.Name)
}

// Wrapper reports whether the event is a grouping header whose block
// only declares other events. Wrappers stay in the schema so merging
// by name keeps working, but they bind nothing themselves.
func (e *Event) Wrapper() bool {
	return e.nested && len(e.order) == 0
}

// fillComment sets the event comment only while it is still empty.
func (e *Event) fillComment(comment string) {
	if e.Comment == "" {
		e.Comment = comment
	}
}

// Schema is the merged event model, preserving first-seen event order.
type Schema struct {
	events map[string]*Event
	order  []string
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{events: make(map[string]*Event)}
}

// Events returns the events in first-seen order.
func (s *Schema) Events() []*Event {
	out := make([]*Event, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.events[name])
	}
	return out
}

// Event looks up an event by name.
func (s *Schema) Event(name string) (*Event, bool) {
	e, ok := s.events[name]
	return e, ok
}

// upsert returns the event with the given name, creating it on first
// sight. Nested variant declarations merge into the same record.
func (s *Schema) upsert(name string) *Event {
	if e, ok := s.events[name]; ok {
		return e
	}
	e := newEvent(name)
	s.events[name] = e
	s.order = append(s.order, name)
	return e
}

// typeAliases are applied before a field type is stored.
var typeAliases = map[string]string{
	"uint64_t":  "uint64",
	"ehandle_t": "ehandle",
}

// sentinelTypes are placeholder tokens, not real fields.
var sentinelTypes = map[string]bool{
	"none":  true,
	"local": true,
	"0":     true,
	"1":     true,
}

// Parse reads one schema source into a fresh schema. Lines that do not
// match the grammar are skipped; the grammar is deliberately lenient.
func Parse(text string) *Schema {
	s := NewSchema()
	c := &cursor{lines: strings.Split(text, "\n")}
	for c.more() {
		line := strings.TrimSpace(c.next())
		if skippable(line) {
			continue
		}
		if !parseHeader(s, c, line) {
			slog.Debug("skipping unrecognized event schema line", "line", line)
		}
	}
	return s
}

// MergeSources parses the canonical sources in precedence order. The
// first source to define an event establishes its record; later
// sources may only add missing fields or fill an empty comment.
func MergeSources(sources ...string) *Schema {
	merged := NewSchema()
	for _, src := range sources {
		merged.merge(Parse(src))
	}
	return merged
}

func (s *Schema) merge(src *Schema) {
	for _, ev := range src.Events() {
		dst := s.upsert(ev.Name)
		dst.nested = dst.nested || ev.nested
		dst.fillComment(ev.Comment)
		for _, f := range ev.Fields() {
			dst.add(&Field{Name: f.Name, Type: f.Type, Comment: f.Comment})
		}
	}
}

type cursor struct {
	lines []string
	pos   int
}

func (c *cursor) more() bool { return c.pos < len(c.lines) }

func (c *cursor) next() string {
	line := c.lines[c.pos]
	c.pos++
	return line
}

func (c *cursor) peek() string {
	if !c.more() {
		return ""
	}
	return c.lines[c.pos]
}

func skippable(line string) bool {
	return line == "" || strings.HasPrefix(line, "//")
}

// parseHeader handles one event header line and, when a block follows,
// its fields. Returns false when the line is not a header.
func parseHeader(s *Schema, c *cursor, line string) bool {
	name, rest, ok := quoted(line)
	if !ok {
		return false
	}
	if _, _, twoTokens := quoted(rest); twoTokens {
		// two quoted tokens form a field pair, which is invalid here
		return false
	}
	ev := s.upsert(name)
	emptyBlock := strings.HasPrefix(rest, "{}")
	if emptyBlock {
		rest = strings.TrimSpace(rest[2:])
	}
	ev.fillComment(inlineComment(rest))
	if emptyBlock {
		return true
	}
	if strings.HasPrefix(rest, "{") {
		parseBlock(s, ev, c)
		return true
	}

	// skip blanks and comments up to the opening brace, if any
	for c.more() && skippable(strings.TrimSpace(c.peek())) {
		c.next()
	}
	open := strings.TrimSpace(c.peek())
	if strings.HasPrefix(open, "{}") {
		c.next()
		return true
	}
	if strings.HasPrefix(open, "{") {
		c.next()
		parseBlock(s, ev, c)
	}
	return true
}

// parseBlock consumes field pairs and nested event headers until the
// brace depth returns to zero.
func parseBlock(s *Schema, ev *Event, c *cursor) {
	depth := 1
	for c.more() {
		line := strings.TrimSpace(c.next())
		if skippable(line) {
			continue
		}
		if strings.HasPrefix(line, "}") {
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		if strings.HasPrefix(line, "{") {
			depth++
			continue
		}

		name, rest, ok := quoted(line)
		if !ok {
			slog.Debug("skipping unrecognized event block line", "event", ev.Name, "line", line)
			continue
		}
		if typ, tail, ok := quoted(rest); ok {
			addField(ev, name, typ, inlineComment(tail))
			continue
		}
		// a lone quoted token inside a block is a nested variant header
		ev.nested = true
		parseNested(s, c, name, rest)
	}
}

func addField(ev *Event, name, typ, comment string) {
	if alias, ok := typeAliases[typ]; ok {
		typ = alias
	}
	if sentinelTypes[typ] {
		return
	}
	ev.add(&Field{Name: name, Type: typ, Comment: comment})
}

// parseNested parses a variant declared inside another event's block
// with the same rules, merging it into the top-level map by name.
func parseNested(s *Schema, c *cursor, name, rest string) {
	nested := s.upsert(name)
	emptyBlock := strings.HasPrefix(rest, "{}")
	if emptyBlock {
		rest = strings.TrimSpace(rest[2:])
	}
	nested.fillComment(inlineComment(rest))
	if emptyBlock {
		return
	}
	if strings.HasPrefix(rest, "{") {
		parseBlock(s, nested, c)
		return
	}
	for c.more() && skippable(strings.TrimSpace(c.peek())) {
		c.next()
	}
	open := strings.TrimSpace(c.peek())
	if strings.HasPrefix(open, "{}") {
		c.next()
		return
	}
	if strings.HasPrefix(open, "{") {
		c.next()
		parseBlock(s, nested, c)
	}
}

// quoted scans a leading double-quoted token, returning the token, the
// trimmed remainder of the line, and whether a token was found.
func quoted(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if len(line) < 2 || line[0] != '"' {
		return "", "", false
	}
	end := strings.IndexByte(line[1:], '"')
	if end < 0 {
		return "", "", false
	}
	return line[1 : end+1], strings.TrimSpace(line[end+2:]), true
}

// inlineComment extracts the text after a trailing // marker.
func inlineComment(rest string) string {
	idx := strings.Index(rest, "//")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(rest[idx+2:])
}
