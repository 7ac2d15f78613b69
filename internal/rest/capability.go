package rest

import (
	"context"
	"net/http"
)

// Capability names an operation contract a resource may support.
type Capability string

const (
	// CapCreate issues a creation call (POST on the collection).
	CapCreate Capability = "create"

	// CapDelete removes one resource (DELETE).
	CapDelete Capability = "delete"

	// CapGet reads one resource (GET).
	CapGet Capability = "get"

	// CapList reads one page of a collection (GET).
	CapList Capability = "list"

	// CapPatch partially updates one resource (PATCH with an update mask).
	CapPatch Capability = "patch"

	// CapUpdate replaces one resource (PUT).
	CapUpdate Capability = "update"

	// CapModifyAssignees changes who a post is assigned to
	// (POST on the ":modifyAssignees" custom method).
	CapModifyAssignees Capability = "modifyAssignees"
)

// Method returns the HTTP verb used to execute the capability.
func (c Capability) Method() string {
	switch c {
	case CapCreate, CapModifyAssignees:
		return http.MethodPost
	case CapDelete:
		return http.MethodDelete
	case CapPatch:
		return http.MethodPatch
	case CapUpdate:
		return http.MethodPut
	default:
		return http.MethodGet
	}
}

// Creatable is implemented by resources that support creation.
type Creatable[P PathParams, Q QueryParams, B, R any] interface {
	Create(ctx context.Context, params P, query Q, body B) (R, error)
}

// Deletable is implemented by resources that support deletion.
type Deletable[P PathParams, Q QueryParams, B, R any] interface {
	Delete(ctx context.Context, params P, query Q, body B) (R, error)
}

// Gettable is implemented by resources that can be read one at a time.
type Gettable[P PathParams, Q QueryParams, B, R any] interface {
	Get(ctx context.Context, params P, query Q, body B) (R, error)
}

// Listable is implemented by resources that can be listed page by page.
// R is expected to implement Page for the resource's item type.
type Listable[P PathParams, Q QueryParams, B, R any] interface {
	List(ctx context.Context, params P, query Q, body B) (R, error)
}

// Patchable is implemented by resources that support partial updates.
type Patchable[P PathParams, Q QueryParams, B, R any] interface {
	Patch(ctx context.Context, params P, query Q, body B) (R, error)
}

// Updatable is implemented by resources that support full replacement.
type Updatable[P PathParams, Q QueryParams, B, R any] interface {
	Update(ctx context.Context, params P, query Q, body B) (R, error)
}

// AssigneeModifiable is implemented by resources whose assignees can be
// changed after creation.
type AssigneeModifiable[P PathParams, Q QueryParams, B, R any] interface {
	ModifyAssignees(ctx context.Context, params P, query Q, body B) (R, error)
}

// PathParams renders path parameters for URL templating.
//
// PathValues must return every key the resource's templates reference, even
// on a zero value; Endpoint.Validate relies on this to check templates.
type PathParams interface {
	PathValues() map[string]string
}

// QueryParams renders query parameters. Absent fields must be left out of
// the returned map so "not provided" is never sent as an empty value.
type QueryParams interface {
	QueryValues() map[string]string
}

// Empty is the void schema type: no path parameters, no query, no request
// body, or no response body.
type Empty struct{}

// PathValues implements PathParams.
func (Empty) PathValues() map[string]string { return nil }

// QueryValues implements QueryParams.
func (Empty) QueryValues() map[string]string { return nil }
