package domain

// RawRecord is an untyped controller object as decoded from JSON
// (a raw service or a raw station). Nested objects are map[string]any.
// The record belongs to the caller; normalisers only read it.
type RawRecord map[string]any
