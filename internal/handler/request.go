package handler

import "strings"

// recordID normalizes a path id value to the table-qualified form engines
// store. Clients may send either "account:abc123" or the bare "abc123".
func recordID(table, raw string) string {
	if strings.Contains(raw, ":") {
		return raw
	}
	return table + ":" + raw
}
