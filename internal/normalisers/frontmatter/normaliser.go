// Package frontmatter splits Jekyll-style documents into structured
// front-matter fields and body text.
package frontmatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// delimiter is the front-matter marker line.
const delimiter = "---"

// Parse splits raw text into front-matter metadata and body text.
//
// The front-matter block is an optional leading section delimited by
// "---" marker lines. A missing or malformed block yields empty metadata
// and the entire input as body; Parse never fails. Every metadata value
// is normalised to a string: timestamps render as ISO-8601, lists as a
// comma-joined string, nested structures as JSON, scalars via their
// natural form.
func Parse(raw string) domain.ParsedDocument {
	block, body, ok := extractBlock(raw)
	if !ok {
		return domain.ParsedDocument{Metadata: map[string]string{}, BodyText: raw}
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		// Malformed front matter degrades to plain body text.
		return domain.ParsedDocument{Metadata: map[string]string{}, BodyText: raw}
	}

	metadata := make(map[string]string, len(fields))
	for k, v := range fields {
		metadata[k] = Stringify(v)
	}

	return domain.ParsedDocument{Metadata: metadata, BodyText: body}
}

// extractBlock returns the text between the opening and closing marker
// lines and the remaining body. The whitespace of the body is left as-is.
func extractBlock(raw string) (block, body string, ok bool) {
	lines := strings.SplitAfter(raw, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != delimiter {
		return "", "", false
	}

	offset := len(lines[0])
	for _, line := range lines[1:] {
		if strings.TrimRight(line, "\r\n") == delimiter {
			blockEnd := offset
			bodyStart := offset + len(line)
			return raw[len(lines[0]):blockEnd], raw[bodyStart:], true
		}
		offset += len(line)
	}

	// Opening marker without a closing one: not a front-matter block.
	return "", "", false
}

// Stringify renders a decoded YAML value as its flat string form.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		// Date-only values render without a time component.
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ", ")
	default:
		if data, err := json.Marshal(val); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", val)
	}
}
