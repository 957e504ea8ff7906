package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// iniSpace is the set of characters trimmed from lines and values.
const iniSpace = " \t\r\n"

// maxLineLength bounds a single INI line.
const maxLineLength = 1 << 20

// Section identifies which part of Settings subsequent key/value lines target.
type Section int

// Sections of RS_ASIO.ini. SectionNone is both the initial cursor and a valid final one.
const (
	SectionNone Section = iota
	SectionConfig
	SectionAsio
	SectionAsioOutput
	SectionAsioInput0
	SectionAsioInput1
)

// String returns the header spelling of the section.
func (s Section) String() string {
	switch s {
	case SectionConfig:
		return "Config"
	case SectionAsio:
		return "Asio"
	case SectionAsioOutput:
		return "Asio.Output"
	case SectionAsioInput0:
		return "Asio.Input.0"
	case SectionAsioInput1:
		return "Asio.Input.1"
	default:
		return "none"
	}
}

// sectionNames maps case-folded header names to sections.
var sectionNames = map[string]Section{
	"config":       SectionConfig,
	"asio":         SectionAsio,
	"asio.output":  SectionAsioOutput,
	"asio.input.0": SectionAsioInput0,
	"asio.input.1": SectionAsioInput1,
}

// DiagnosticKind classifies a logged parse problem.
type DiagnosticKind string

// Diagnostic kinds reported by Parse.
const (
	DiagnosticMalformedSection DiagnosticKind = "malformed_section"
	DiagnosticInvalidValue     DiagnosticKind = "invalid_value"
)

// Diagnostic describes one problem Parse logged and skipped over.
type Diagnostic struct {
	Line    int            `json:"line"`
	Section Section        `json:"-"`
	Key     string         `json:"key,omitempty"`
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

// ParseOption configures Parse.
type ParseOption func(*parser)

// WithObserver registers a callback receiving every diagnostic, in line order.
func WithObserver(fn func(Diagnostic)) ParseOption {
	return func(p *parser) {
		p.observe = fn
	}
}

// outcome is the result of applying one value to a field.
type outcome int

const (
	// kept means the value was not understood and the field keeps its prior value silently.
	kept outcome = iota
	// applied means the field now holds the new value.
	applied
	// invalid means the field keeps its prior value and the problem is reported.
	invalid
)

// setter applies a trimmed value to one field of Settings.
type setter func(s *Settings, value string) outcome

// rule binds a key to its setter and to the message logged when the value is invalid.
type rule struct {
	set     setter
	message string
}

// rules maps every (section, case-folded key) pair the parser understands.
// Pairs not listed here are ignored.
var rules = map[Section]map[string]rule{
	SectionConfig: {
		"enablewasapi": {set: boolSetter(func(s *Settings) *bool { return &s.EnableWasapi })},
		"enableasio":   {set: boolSetter(func(s *Settings) *bool { return &s.EnableAsio })},
	},
	SectionAsio: {
		"buffersizemode": {
			set:     setBufferSizeMode,
			message: `Invalid value for buffer size mode, valid values are "driver", "host"`,
		},
	},
	SectionAsioOutput: {
		"driver": {set: func(s *Settings, value string) outcome {
			s.Asio.Output.DriverName = value
			return applied
		}},
	},
	SectionAsioInput0: inputRules(0),
	SectionAsioInput1: inputRules(1),
}

func inputRules(slot int) map[string]rule {
	return map[string]rule{
		"driver": {set: func(s *Settings, value string) outcome {
			s.Asio.Inputs[slot].DriverName = value
			return applied
		}},
		"channel": {
			set: func(s *Settings, value string) outcome {
				c, ok := parseChannel(value)
				if !ok {
					return invalid
				}
				s.Asio.Inputs[slot].Channel = &c
				return applied
			},
			message: "Invalid value for channel, value should be an integer starting at zero",
		},
	}
}

func boolSetter(field func(*Settings) *bool) setter {
	return func(s *Settings, value string) outcome {
		b, ok := parseBool(value)
		if !ok {
			return kept
		}
		*field(s) = b
		return applied
	}
}

func setBufferSizeMode(s *Settings, value string) outcome {
	mode, ok := parseBufferSizeMode(value)
	if !ok {
		return invalid
	}
	s.Asio.BufferSizeMode = mode
	return applied
}

// parseBool accepts "1", "0" and case-insensitive "true"/"false" only.
func parseBool(s string) (bool, bool) {
	switch s {
	case "1":
		return true, true
	case "0":
		return false, true
	}
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseChannel reads an optional sign and the leading base-10 digits of s,
// ignoring whatever follows them, so "1 ; comment" is 1. The number must fit
// a 32-bit int and not be negative.
func parseChannel(s string) (uint, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return uint(n), true
}

// trimSpace strips iniSpace from both ends with independent scans.
func trimSpace(s string) string {
	start := 0
	for start < len(s) && strings.IndexByte(iniSpace, s[start]) >= 0 {
		start++
	}
	end := len(s)
	for end > start && strings.IndexByte(iniSpace, s[end-1]) >= 0 {
		end--
	}
	return s[start:end]
}

type parser struct {
	dst     *Settings
	logger  *slog.Logger
	observe func(Diagnostic)
	section Section
	line    int
}

// Parse reads INI text from r and applies recognized settings to dst in place.
// Malformed or unknown content is logged and skipped; the returned error only
// reports failures reading r.
func Parse(r io.Reader, dst *Settings, logger *slog.Logger, opts ...ParseOption) error {
	p := &parser{dst: dst, logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	for scanner.Scan() {
		p.line++
		p.parseLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read config at line %d: %w", p.line+1, err)
	}
	return nil
}

// ParseFile parses the INI file at path on top of the built-in defaults.
func ParseFile(path string, logger *slog.Logger, opts ...ParseOption) (Settings, error) {
	settings := Defaults()

	f, err := os.Open(path)
	if err != nil {
		return settings, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := Parse(f, &settings, logger, opts...); err != nil {
		return settings, err
	}
	return settings, nil
}

func (p *parser) parseLine(raw string) {
	line := trimSpace(raw)
	if line == "" {
		return
	}

	switch line[0] {
	case '[':
		p.parseSection(line)
		return
	case ';', '#':
		return
	}

	// nothing before the first recognized section is interpreted
	if p.section == SectionNone {
		return
	}

	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return
	}
	key := strings.ToLower(line[:eq])
	value := trimSpace(line[eq+1:])
	if key == "" || value == "" {
		return
	}

	r, ok := rules[p.section][key]
	if !ok {
		return
	}
	if r.set(p.dst, value) == invalid {
		p.report(DiagnosticInvalidValue, key, r.message, "value", value)
	}
}

func (p *parser) parseSection(line string) {
	if strings.IndexByte(line, ']') != len(line)-1 {
		p.report(DiagnosticMalformedSection, "", "Malformed ini section")
		return
	}

	// Unknown names leave the cursor where it was, so keys that follow keep
	// applying to the previous section.
	name := strings.ToLower(line[1 : len(line)-1])
	if s, ok := sectionNames[name]; ok {
		p.section = s
	}
}

func (p *parser) report(kind DiagnosticKind, key, msg string, args ...any) {
	attrs := append([]any{"line", p.line, "section", p.section.String()}, args...)
	if key != "" {
		attrs = append(attrs, "key", key)
	}
	if p.logger != nil {
		p.logger.Error(msg, attrs...)
	}
	if p.observe != nil {
		p.observe(Diagnostic{
			Line:    p.line,
			Section: p.section,
			Key:     key,
			Kind:    kind,
			Message: msg,
		})
	}
}
