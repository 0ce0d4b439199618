package apierror

import (
	"sort"
	"strings"
)

// ValidationError carries field-scoped messages so multi-field failures
// reach the caller in one response.
type ValidationError map[string][]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[f], ", "))
	}
	return b.String()
}

func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

func New(field, message string) ValidationError {
	e := ValidationError{}
	e.Add(field, message)
	return e
}
