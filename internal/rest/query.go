package rest

import (
	"strconv"
	"strings"
)

// Values accumulates query parameters, skipping absent ones.
//
// Resource query types build their QueryValues with it so that nil pointers,
// empty strings, and empty lists are never sent. A field that must be able
// to send an explicit empty string is a *string recorded with SetString.
type Values map[string]string

// Set records value under key unless value is empty.
func (v Values) Set(key, value string) {
	if value != "" {
		v[key] = value
	}
}

// SetString records *s under key unless s is nil. An explicit "" is sent.
func (v Values) SetString(key string, s *string) {
	if s != nil {
		v[key] = *s
	}
}

// SetInt records *n under key unless n is nil. An explicit zero is sent.
func (v Values) SetInt(key string, n *int) {
	if n != nil {
		v[key] = strconv.Itoa(*n)
	}
}

// SetBool records *b under key unless b is nil.
func (v Values) SetBool(key string, b *bool) {
	if b != nil {
		v[key] = strconv.FormatBool(*b)
	}
}

// SetList records a comma-joined list under key unless it is empty.
func SetList[S ~string](v Values, key string, items []S) {
	if len(items) == 0 {
		return
	}
	v[key] = JoinList(items)
}

// JoinList is the list encoding used for list-valued query fields:
// elements joined with "," in their given order.
func JoinList[S ~string](items []S) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = string(item)
	}
	return strings.Join(parts, ",")
}
