// Package rest implements the typed resource-binding layer for the
// classroom REST API.
//
// A resource kind (announcements, course work, ...) is described by a set of
// Endpoint values, one per supported capability. Each Endpoint carries its
// HTTP verb (derived from the capability), a URL template, and the four
// schema types of the operation as type parameters:
//
//	Endpoint[P, Q, B, R]
//	  P  path parameters   (PathParams: rendered into {placeholders})
//	  Q  query parameters  (QueryParams: absent fields are never sent)
//	  B  request body      (JSON; Empty encodes to no body)
//	  R  response body     (JSON; Empty skips decoding)
//
// Capabilities are composed, not inherited: a resource type declares the
// subset it supports by implementing the matching generic interfaces
// (Creatable, Listable, AssigneeModifiable, ...), and those methods delegate
// to Endpoint.Call.
//
// EXECUTION:
//
// Endpoint.Call is the generic executor. It
//  1. resolves the URL template (MissingPathParameterError on a gap),
//  2. encodes query values,
//  3. validates and serializes the body (InvalidRequestError),
//  4. issues the request through Client (bearer token, timeout, retries),
//  5. maps failures to RequestError and decodes the response (DecodeError).
//
// Client and Endpoint values hold no per-call state and are safe for
// concurrent use.
package rest
