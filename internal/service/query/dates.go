package query

import "time"

// submissionDateLayouts are tried in order when normalizing a stored
// submission timestamp.
var submissionDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// NormalizeSubmissionDate reduces a stored submission timestamp to
// YYYY-MM-DD. Stored values arrive in several shapes (RFC3339 with or
// without a zone, or an opaque string); unparseable values fall back to
// their first 10 characters.
func NormalizeSubmissionDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range submissionDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}
