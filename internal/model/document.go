package model

// Object is a JSON object decoded into a generic key/value tree.
// Values are the types produced by encoding/json with UseNumber:
// nil, bool, string, json.Number, []any and map[string]any.
//
// Design decision: We keep the decoded tree instead of unmarshaling into
// typed structs because values must pass through to the outputs verbatim.
// A typed struct would turn a missing "metricQuantity" and an explicit
// `"metricQuantity": null` into the same zero value, and would coerce
// unexpected types. Every read goes through Get with an explicit fallback.
type Object map[string]any

// Get returns the value stored under key, or fallback when the key is absent.
// A key that is present with a null value returns nil, not fallback.
func (o Object) Get(key string, fallback any) any {
	v, ok := o[key]
	if !ok {
		return fallback
	}
	return v
}
