// Package listcodec encodes ordered text lists as strict JSON arrays and
// decodes both the strict form and the loosely-quoted legacy form produced by
// earlier versions of the system.
package listcodec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Encode serializes items as a strict JSON array. A nil slice encodes as [].
func Encode(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode text list: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored text list. Strict JSON arrays are preferred; the
// legacy loosely-quoted form ("['python', 'go']") is accepted so old records
// keep working until migrated.
func Decode(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, nil
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return decodeLegacy(raw)
	}

	return nil, fmt.Errorf("unrecognized text list encoding: %q", truncate(raw, 40))
}

// decodeLegacy parses the single-quoted list format. Elements are split on
// commas outside quotes; surrounding quotes of either kind are stripped.
func decodeLegacy(raw string) ([]string, error) {
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return []string{}, nil
	}

	var items []string
	var sb strings.Builder
	var quote rune
	for _, r := range inner {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				sb.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			items = appendItem(items, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in legacy text list: %q", truncate(raw, 40))
	}
	items = appendItem(items, sb.String())

	return items, nil
}

func appendItem(items []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return items
	}
	return append(items, s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
