package schema

import (
	"sort"
)

// Schema is a map of field names to their expected types.
// Example: {"title": String(), "order": Optional(Int(), nil)}
type Schema map[string]Type

func (s Schema) keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks if data conforms to the schema.
// Returns an *AggregateError listing every failure in field name order.
func Validate(schema Schema, data map[string]any) error {
	_, err := Normalize(schema, data)
	return err
}

// Normalize validates data and returns a copy where absent optional fields
// carry their defaults and numbers are coerced to int. Fields unknown to the
// schema are copied unchanged.
func Normalize(schema Schema, data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(data)+len(schema))
	for k, v := range data {
		out[k] = v
	}

	var errs []error
	for _, fieldName := range schema.keys() {
		fieldType := schema[fieldName]
		value, exists := data[fieldName]
		if !exists || value == nil {
			if opt, ok := fieldType.(*OptionalType); ok {
				if opt.def != nil {
					out[fieldName] = opt.def
				}
				continue
			}
			errs = append(errs, &ValidationError{Key: fieldName, Reason: "required"})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: err.Error(), Value: value})
			continue
		}
		out[fieldName] = normalize(fieldType, value)
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

func normalize(t Type, value any) any {
	if opt, ok := t.(*OptionalType); ok {
		t = opt.inner
	}
	n, ok := t.(Normalizer)
	if !ok {
		return value
	}
	v, err := n.Normalize(value)
	if err != nil {
		return value
	}
	return v
}
