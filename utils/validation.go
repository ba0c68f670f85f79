// utils/validation.go
package utils

// MissingFields returns the names of fields whose value is empty, in the
// order given. Whitespace counts as a value.
func MissingFields(fields ...[2]string) []string {
	var missing []string
	for _, f := range fields {
		if f[1] == "" {
			missing = append(missing, f[0])
		}
	}
	return missing
}

// Field pairs a field name with its value for MissingFields.
func Field(name, value string) [2]string {
	return [2]string{name, value}
}
