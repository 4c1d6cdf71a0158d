// Package idents converts raw schema tokens into C# identifiers and
// maps schema type tokens onto binding strategies shared by the
// emitters.
package idents

import (
	"strconv"
	"strings"
	"unicode"
)

// overrides are consulted before any splitting. Tokens the heuristics
// would get wrong are pinned here.
var overrides = map[string]string{
	"userid":   "UserId",
	"hltv":     "HLTV",
	"musickit": "MusicKit",
	"xuid":     "Xuid",
}

// upperSegments render fully upper-case instead of title-case: short
// acronyms and single-letter axis names.
var upperSegments = map[string]bool{
	"id": true, "ip": true, "url": true, "fov": true, "hp": true,
	"ui": true, "x": true, "y": true, "z": true,
}

// dictionary drives word segmentation for delimiter-free lowercase
// tokens. Longest match wins, scanning left to right.
var dictionary = map[string]bool{}

var dictionaryWords = []string{
	"round", "end", "start", "begin", "reason", "player", "team", "num",
	"count", "health", "armor", "weapon", "item", "def", "index",
	"attacker", "victim", "assister", "headshot", "penetrated",
	"dominated", "revenge", "priority", "user", "id", "name", "type",
	"value", "time", "delay", "site", "bomb", "plant", "defuse",
	"hostage", "rescue", "entity", "ent", "silencer", "scoped", "score",
	"money", "cash", "spend", "account", "win", "loss", "match", "map",
	"game", "mode", "phase", "timer", "paused", "state", "slot",
	"sound", "step", "duration", "radius", "pos", "position", "angle",
	"pitch", "yaw", "blind", "flash", "duck", "jump", "spawn", "death",
	"kill", "damage", "hit", "group", "mask", "level", "msg", "text",
	"chat", "all", "only", "can", "do", "is", "has", "was", "new",
	"old", "final", "first", "last", "total", "max", "min", "x", "y",
	"z", "objective", "timeout", "warmup", "restart", "vote", "passed",
	"failed", "changed", "updated", "broke", "prop", "zone", "buy",
	"freeze", "period", "taser", "assist", "disconnect", "connect",
	"full", "reload", "fire", "zoom", "rating", "rank", "reveal",
}

func init() {
	for _, w := range dictionaryWords {
		dictionary[w] = true
	}
	// longest first for the greedy matcher
	maxWordLen = 0
	for w := range dictionary {
		if len(w) > maxWordLen {
			maxWordLen = len(w)
		}
	}
}

var maxWordLen int

// Identifier converts a raw schema token into a C# identifier.
//
// Rule order: literal overrides, delimiter split, dictionary-driven
// segmentation for bare lowercase tokens, then a raw split on
// non-alphanumeric runs. A result starting with a digit is prefixed
// with "N".
func Identifier(token string) string {
	name := convert(token)
	if name == "" {
		return name
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "N" + name
	}
	return name
}

// Exported upper-cases the first rune of an already-formed identifier,
// leaving the rest untouched. Used for tokens that arrive pre-cased,
// such as native function names.
func Exported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func convert(token string) string {
	if v, ok := overrides[strings.ToLower(token)]; ok {
		return v
	}
	if strings.ContainsRune(token, '_') {
		return joinSegments(strings.Split(token, "_"))
	}
	if isLowerAlnum(token) {
		if segs, ok := segment(token); ok {
			return joinSegments(segs)
		}
		return titleSegment(token)
	}
	return joinSegments(splitNonAlnum(token))
}

func joinSegments(segs []string) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(titleSegment(s))
	}
	return sb.String()
}

func titleSegment(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if upperSegments[lower] {
		return strings.ToUpper(lower)
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func isLowerAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !(r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}

func splitNonAlnum(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// segment greedily splits a bare lowercase token into dictionary words,
// longest match first, backtracking when a prefix choice strands the
// remainder. Trailing digit runs attach to the preceding word.
func segment(token string) ([]string, bool) {
	if token == "" {
		return nil, false
	}
	// peel a trailing digit run; "player2" segments as "player" + "2"
	base := strings.TrimRightFunc(token, unicode.IsDigit)
	suffix := token[len(base):]
	if base == "" {
		return nil, false
	}

	segs, ok := segmentWords(base)
	if !ok {
		return nil, false
	}
	if suffix != "" {
		segs[len(segs)-1] += suffix
	}
	return segs, true
}

func segmentWords(s string) ([]string, bool) {
	if s == "" {
		return nil, true
	}
	limit := maxWordLen
	if limit > len(s) {
		limit = len(s)
	}
	for n := limit; n >= 1; n-- {
		head := s[:n]
		if !dictionary[head] {
			continue
		}
		rest, ok := segmentWords(s[n:])
		if !ok {
			continue
		}
		return append([]string{head}, rest...), true
	}
	return nil, false
}

// Scope assigns unique identifiers within one declaring type. The first
// claim of a name is returned as-is; later claims of the same name get
// an incrementing numeric suffix.
type Scope struct {
	seen map[string]int
}

// NewScope returns an empty identifier scope.
func NewScope() *Scope {
	return &Scope{seen: make(map[string]int)}
}

// Claim reserves name within the scope and returns the disambiguated
// identifier to use.
func (s *Scope) Claim(name string) string {
	s.seen[name]++
	n := s.seen[name]
	if n == 1 {
		return name
	}
	return name + strconv.Itoa(n)
}
