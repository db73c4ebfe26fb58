package util

import "time"

// ISOMillis is RFC 3339 in UTC with millisecond precision, e.g. 2023-01-01T00:00:00.000Z
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// FormatDate renders t as an ISO 8601 UTC timestamp with milliseconds
func FormatDate(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}
