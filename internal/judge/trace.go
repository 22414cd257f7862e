// internal/judge/trace.go
package judge

import (
	"regexp"
	"strings"
)

// Severity classifies a single execution trace line.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// TraceEntry is one parsed line of an execution trace.
type TraceEntry struct {
	Icon     string // iconographic hint token, without colons; may be empty
	Severity Severity
	Message  string
}

// iconPattern matches a leading ":token:" hint, e.g. ":rocket: Starting".
var iconPattern = regexp.MustCompile(`^:([a-z0-9_]+):\s*`)

// ParseTraceLine parses one raw trace line. Lines optionally start with an
// ":icon:" token; the remaining message optionally starts with a "[CRITICAL]"
// or "[WARN]" severity marker. A warning icon also implies warn severity.
func ParseTraceLine(line string) TraceEntry {
	entry := TraceEntry{Message: strings.TrimSpace(line)}

	if match := iconPattern.FindStringSubmatch(entry.Message); match != nil {
		entry.Icon = match[1]
		entry.Message = strings.TrimSpace(entry.Message[len(match[0]):])
	}

	switch {
	case strings.HasPrefix(entry.Message, "[CRITICAL]"):
		entry.Severity = SeverityCritical
		entry.Message = strings.TrimSpace(strings.TrimPrefix(entry.Message, "[CRITICAL]"))
	case strings.HasPrefix(entry.Message, "[WARN]"):
		entry.Severity = SeverityWarn
		entry.Message = strings.TrimSpace(strings.TrimPrefix(entry.Message, "[WARN]"))
	case entry.Icon == "warning":
		entry.Severity = SeverityWarn
	}

	return entry
}

// ParseTrace parses a full execution trace, skipping blank lines.
func ParseTrace(lines []string) []TraceEntry {
	var entries []TraceEntry
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, ParseTraceLine(line))
	}
	return entries
}
