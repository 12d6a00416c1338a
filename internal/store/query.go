package store

import "encoding/json"

// Query is one server-side predicate or modifier in the store's string
// syntax, e.g. equal("status",["Available"]). Helpers below build the
// narrow set the workflows need; this is deliberately not a general query
// language.
type Query string

// Equal matches documents whose field equals value.
func Equal(field string, value any) Query {
	return build("equal", field, value)
}

// GreaterThanEqual matches documents whose field is >= value.
func GreaterThanEqual(field string, value any) Query {
	return build("greaterThanEqual", field, value)
}

// LessThanEqual matches documents whose field is <= value.
func LessThanEqual(field string, value any) Query {
	return build("lessThanEqual", field, value)
}

// OrderDesc sorts results by field, newest/largest first.
func OrderDesc(field string) Query {
	f, _ := json.Marshal(field)
	return Query("orderDesc(" + string(f) + ")")
}

func limitQuery(n int) Query {
	b, _ := json.Marshal(n)
	return Query("limit(" + string(b) + ")")
}

func offsetQuery(n int) Query {
	b, _ := json.Marshal(n)
	return Query("offset(" + string(b) + ")")
}

func build(op, field string, value any) Query {
	f, _ := json.Marshal(field)
	v, _ := json.Marshal([]any{value})
	return Query(op + "(" + string(f) + "," + string(v) + ")")
}
