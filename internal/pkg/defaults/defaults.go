// Package defaults is the single place where "absent" optional listing fields
// are normalized to their stored placeholder. The Express app scattered the
// "None Listed" checks inline; here the policy is one table.
package defaults

import "strings"

// FieldDefaults maps a listing field to the sentinel stored when the caller
// supplies nothing. These values are never empty in the database.
var FieldDefaults = map[string]string{
	"amenities":    "None Listed",
	"restrictions": "None Listed",
}

// Apply returns the value unchanged when non-blank, otherwise the configured
// sentinel for the field. Fields without a configured default pass through.
func Apply(field, value string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	if def, ok := FieldDefaults[field]; ok {
		return def
	}
	return value
}
