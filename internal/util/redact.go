package util

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const redactedValue = "[REDACTED]"

// RedactSensitiveJSON replaces credential-bearing fields in a JSON payload
// with a placeholder so token responses can be logged safely. If the payload
// is not valid JSON, it returns the original bytes.
func RedactSensitiveJSON(body []byte) []byte {
	trim := strings.TrimSpace(string(body))
	if trim == "" {
		return body
	}
	if !strings.HasPrefix(trim, "{") && !strings.HasPrefix(trim, "[") {
		return body
	}
	if !gjson.ValidBytes(body) {
		return body
	}

	out := body
	var walk func(prefix string, value gjson.Result)
	walk = func(prefix string, value gjson.Result) {
		index := 0
		value.ForEach(func(key, val gjson.Result) bool {
			var segment string
			if value.IsArray() {
				segment = strconv.Itoa(index)
			} else {
				segment = escapePathSegment(key.String())
			}
			index++

			path := segment
			if prefix != "" {
				path = prefix + "." + segment
			}

			if !value.IsArray() && isSensitiveKey(key.String()) {
				if updated, errSet := sjson.SetBytes(out, path, redactedValue); errSet == nil {
					out = updated
				}
				return true
			}
			if val.IsObject() || val.IsArray() {
				walk(path, val)
			}
			return true
		})
	}
	walk("", gjson.ParseBytes(body))

	return out
}

// escapePathSegment escapes gjson path metacharacters in an object key.
func escapePathSegment(segment string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return replacer.Replace(segment)
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "code" {
		return true
	}
	switch {
	case strings.Contains(k, "authorization"),
		strings.Contains(k, "cookie"),
		strings.Contains(k, "api_key"),
		strings.Contains(k, "apikey"),
		strings.Contains(k, "secret"),
		strings.Contains(k, "token"),
		strings.Contains(k, "verifier"),
		strings.Contains(k, "password"):
		return true
	default:
		return false
	}
}
