package manager

import (
	"context"

	"github.com/roach88/glassroom/internal/rest"
)

// Page is one fetched page of items.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// ListFunc fetches the page identified by pageToken ("" for the first page).
type ListFunc[T any] func(ctx context.Context, pageToken string) (Page[T], error)

// Pager adapts a resource's List method into a ListFunc. The item type is
// given explicitly; the schema types are inferred from list:
//
//	fetch := manager.Pager[classroom.CourseWork](svc.CourseWork.List,
//	    classroom.CourseIDParams{CourseID: id}, classroom.CourseWorkListQuery{})
func Pager[T any, P rest.PathParams, Q rest.PagedQuery[Q], R rest.Page[T]](
	list func(context.Context, P, Q, rest.Empty) (R, error),
	params P,
	query Q,
) ListFunc[T] {
	return func(ctx context.Context, pageToken string) (Page[T], error) {
		resp, err := list(ctx, params, query.WithPageToken(pageToken), rest.Empty{})
		if err != nil {
			return Page[T]{}, err
		}
		return Page[T]{Items: resp.PageItems(), NextPageToken: resp.PageToken()}, nil
	}
}
