package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// Truncate bounds diagnostic payloads; raw model output is logged, never
// shown to the end user.
func Truncate(s string, max int) string {
  if max <= 0 || len(s) <= max {
    return s
  }
  return s[:max] + "...(truncated)"
}
