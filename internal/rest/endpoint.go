package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Endpoint is the static schema of one capability of one resource kind.
//
// The four type parameters are the operation's schema types; Template is
// relative to the Client's base URL and its placeholders must match the key
// set of P's PathValues exactly (see Validate).
//
// Example:
//
//	var announcementGet = rest.Endpoint[CourseItemParams, rest.Empty, rest.Empty, Announcement]{
//	    Capability: rest.CapGet,
//	    Template:   "/courses/{courseId}/announcements/{id}",
//	}
type Endpoint[P PathParams, Q QueryParams, B, R any] struct {
	Capability Capability
	Template   string
}

// EndpointInfo is the type-erased description of an Endpoint.
type EndpointInfo struct {
	Capability Capability
	Method     string
	Template   string
}

// Descriptor is implemented by every Endpoint instantiation so heterogeneous
// endpoint sets can be listed and checked together.
type Descriptor interface {
	Info() EndpointInfo
	Validate() error
}

// Info implements Descriptor.
func (e Endpoint[P, Q, B, R]) Info() EndpointInfo {
	return EndpointInfo{
		Capability: e.Capability,
		Method:     e.Capability.Method(),
		Template:   e.Template,
	}
}

// Validate checks the declaration invariant: a non-empty template whose
// placeholders are exactly the path parameter names of P.
func (e Endpoint[P, Q, B, R]) Validate() error {
	if e.Capability == "" {
		return fmt.Errorf("endpoint %q: capability is required", e.Template)
	}
	if e.Template == "" {
		return fmt.Errorf("%s endpoint: URL template is required", e.Capability)
	}

	var params P
	declared := sortedKeys(params.PathValues())
	used := Placeholders(e.Template)
	sort.Strings(used)

	if !equalStrings(declared, used) {
		return fmt.Errorf("%s endpoint %q: placeholders %v do not match path parameters %v",
			e.Capability, e.Template, used, declared)
	}
	return nil
}

// Call executes the endpoint.
//
// Steps:
//  1. Resolve the URL template from params (MissingPathParameterError)
//  2. Validate query and body struct tags (InvalidRequestError)
//  3. Serialize body as JSON; Empty sends no body
//  4. Issue the request (RequestError on transport failure or non-2xx)
//  5. Decode the response into R (DecodeError); Empty skips decoding
//
// A list response without a nextPageToken picks up the pageToken of a
// rel="next" Link header when the server sends one.
func (e Endpoint[P, Q, B, R]) Call(ctx context.Context, c *Client, params P, query Q, body B) (R, error) {
	var zero R

	u, err := ResolveURL(joinURL(c.baseURL, e.Template), params.PathValues())
	if err != nil {
		return zero, err
	}

	if err := c.validateStruct(query); err != nil {
		return zero, &InvalidRequestError{Err: fmt.Errorf("query: %w", err)}
	}
	payload, err := c.encodeBody(body)
	if err != nil {
		return zero, err
	}

	resp, err := c.do(ctx, e.Capability.Method(), u, query.QueryValues(), payload)
	if err != nil {
		return zero, err
	}

	if isEmpty(zero) {
		return zero, nil
	}

	var out R
	raw := bytes.TrimSpace(resp.Body)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &DecodeError{URL: u, Body: resp.Body, Err: err}
	}

	if setter, ok := any(&out).(PageTokenSetter); ok {
		if page, ok := any(out).(interface{ PageToken() string }); ok && page.PageToken() == "" {
			if token := nextTokenFromLink(resp.Header.Get("Link")); token != "" {
				setter.SetNextPageToken(token)
			}
		}
	}

	return out, nil
}

// encodeBody validates and serializes a request body.
// Returns nil (no body) for Empty.
func (c *Client) encodeBody(body any) ([]byte, error) {
	if isEmpty(body) {
		return nil, nil
	}
	if err := c.validateStruct(body); err != nil {
		return nil, &InvalidRequestError{Err: fmt.Errorf("body: %w", err)}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &InvalidRequestError{Err: fmt.Errorf("encode body: %w", err)}
	}
	return payload, nil
}

// validateStruct runs struct-tag validation on structs (or pointers to
// structs). Other kinds carry no tags and pass.
func (c *Client) validateStruct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return c.validate.Struct(rv.Interface())
}

func isEmpty(v any) bool {
	switch v.(type) {
	case Empty, *Empty:
		return true
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
