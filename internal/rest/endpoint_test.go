package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type testPath struct {
	CourseID string
	ID       string
}

func (p testPath) PathValues() map[string]string {
	return map[string]string{"courseId": p.CourseID, "id": p.ID}
}

type testCourse struct {
	CourseID string
}

func (p testCourse) PathValues() map[string]string {
	return map[string]string{"courseId": p.CourseID}
}

type testQuery struct {
	States    []string
	PageSize  *int `validate:"omitempty,gte=1"`
	PageToken string
	Filter    *string
}

func (q testQuery) QueryValues() map[string]string {
	v := Values{}
	SetList(v, "states", q.States)
	v.SetInt("pageSize", q.PageSize)
	v.Set("pageToken", q.PageToken)
	v.SetString("filter", q.Filter)
	return v
}

type testItem struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	State string `json:"state,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

type testPage struct {
	Items         []testItem `json:"items,omitempty"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

func (p testPage) PageItems() []testItem        { return p.Items }
func (p testPage) PageToken() string            { return p.NextPageToken }
func (p *testPage) SetNextPageToken(tok string) { p.NextPageToken = tok }

var (
	testList   = Endpoint[testCourse, testQuery, Empty, testPage]{Capability: CapList, Template: "/courses/{courseId}/items"}
	testGet    = Endpoint[testPath, Empty, Empty, testItem]{Capability: CapGet, Template: "/courses/{courseId}/items/{id}"}
	testCreate = Endpoint[testCourse, Empty, testItem, testItem]{Capability: CapCreate, Template: "/courses/{courseId}/items"}
	testDelete = Endpoint[testPath, Empty, Empty, Empty]{Capability: CapDelete, Template: "/courses/{courseId}/items/{id}"}
)

// newTestClient starts an httptest server and a Client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base := []ClientOption{
		WithBaseURL(srv.URL + "/v1"),
		WithHTTPClient(srv.Client()),
		WithRetryWait(time.Millisecond),
	}
	return NewClient(append(base, opts...)...)
}

func TestEndpoint_Validate(t *testing.T) {
	require.NoError(t, testList.Validate())
	require.NoError(t, testGet.Validate())
	require.NoError(t, testDelete.Validate())

	courses := Endpoint[Empty, Empty, Empty, Empty]{Capability: CapList, Template: "/courses"}
	require.NoError(t, courses.Validate())
}

func TestEndpoint_Validate_Mismatch(t *testing.T) {
	tests := []struct {
		name string
		ep   Descriptor
	}{
		{"empty template", Endpoint[testPath, Empty, Empty, Empty]{Capability: CapGet}},
		{"missing capability", Endpoint[testPath, Empty, Empty, Empty]{Template: "/courses/{courseId}/items/{id}"}},
		{"placeholder not declared", Endpoint[testCourse, Empty, Empty, Empty]{Capability: CapGet, Template: "/courses/{courseId}/items/{id}"}},
		{"declared field unused", Endpoint[testPath, Empty, Empty, Empty]{Capability: CapList, Template: "/courses/{courseId}/items"}},
		{"misspelled placeholder", Endpoint[testCourse, Empty, Empty, Empty]{Capability: CapList, Template: "/courses/{courseID}/items"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.ep.Validate())
		})
	}
}

func TestEndpoint_Info(t *testing.T) {
	info := testDelete.Info()
	assert.Equal(t, CapDelete, info.Capability)
	assert.Equal(t, http.MethodDelete, info.Method)
	assert.Equal(t, "/courses/{courseId}/items/{id}", info.Template)
}

func TestCall_GetDecodesResponse(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"123","title":"Essay","unknownField":true}`)
	})

	item, err := testGet.Call(context.Background(), client, testPath{CourseID: "abc", ID: "123"}, Empty{}, Empty{})
	require.NoError(t, err)

	assert.Equal(t, "/v1/courses/abc/items/123", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, testItem{ID: "123", Title: "Essay"}, item)
}

func TestCall_ListEncodesOnlyPresentQueryValues(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `{"items":[{"id":"1"},{"id":"2"}],"nextPageToken":"p2"}`)
	})

	size := 2
	page, err := testList.Call(context.Background(), client, testCourse{CourseID: "c1"},
		testQuery{States: []string{"DRAFT", "PUBLISHED"}, PageSize: &size}, Empty{})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"states":   {"DRAFT,PUBLISHED"},
		"pageSize": {"2"},
	}, gotQuery)
	assert.Len(t, page.PageItems(), 2)
	assert.Equal(t, "p2", page.PageToken())
}

func TestCall_ExplicitEmptyQueryValueIsSent(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `{}`)
	})

	empty := ""
	_, err := testList.Call(context.Background(), client, testCourse{CourseID: "c1"},
		testQuery{Filter: &empty}, Empty{})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"filter": {""}}, gotQuery)
}

func TestCall_EmptyListBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	page, err := testList.Call(context.Background(), client, testCourse{CourseID: "c1"}, testQuery{}, Empty{})
	require.NoError(t, err)
	assert.Empty(t, page.PageItems())
	assert.Empty(t, page.PageToken())
}

func TestCall_LinkHeaderPagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", `<https://example.test/v1/courses/c1/items?pageToken=from-link>; rel="next", <https://example.test/v1/courses/c1/items>; rel="first"`)
		io.WriteString(w, `{"items":[{"id":"1"}]}`)
	})

	page, err := testList.Call(context.Background(), client, testCourse{CourseID: "c1"}, testQuery{}, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "from-link", page.PageToken())
}

func TestCall_BodyTokenWinsOverLinkHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", `<https://example.test/x?pageToken=from-link>; rel="next"`)
		io.WriteString(w, `{"items":[],"nextPageToken":"from-body"}`)
	})

	page, err := testList.Call(context.Background(), client, testCourse{CourseID: "c1"}, testQuery{}, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "from-body", page.PageToken())
}

func TestCall_CreateSendsJSONBody(t *testing.T) {
	var got testItem
	var contentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		got.ID = "new-1"
		json.NewEncoder(w).Encode(got)
	})

	created, err := testCreate.Call(context.Background(), client, testCourse{CourseID: "c1"}, Empty{},
		testItem{Title: "Quiz", State: "DRAFT"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Quiz", got.Title)
	assert.Equal(t, testItem{ID: "new-1", Title: "Quiz", State: "DRAFT"}, created)
}

func TestCall_DeleteSendsNoBodyAndSkipsDecode(t *testing.T) {
	var bodyLen int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodyLen = len(b)
		require.Equal(t, http.MethodDelete, r.Method)
		io.WriteString(w, "not json at all")
	})

	_, err := testDelete.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.NoError(t, err)
	assert.Zero(t, bodyLen)
}

func TestCall_InvalidBodyIsNotSent(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := testCreate.Call(context.Background(), client, testCourse{CourseID: "c1"}, Empty{},
		testItem{Title: "Quiz", State: "ARCHIVED"})
	require.Error(t, err)

	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ErrCodeInvalidRequest, Code(err))
	assert.Zero(t, calls.Load())
}

func TestCall_InvalidQueryIsNotSent(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	size := 0
	_, err := testList.Call(context.Background(), client, testCourse{CourseID: "c1"}, testQuery{PageSize: &size}, Empty{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidRequest, Code(err))
	assert.Zero(t, calls.Load())
}

func TestCall_MissingPathParameterMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1"}, Empty{}, Empty{})
	require.Error(t, err)
	assert.True(t, IsMissingPathParameter(err))
	assert.Zero(t, calls.Load())
}

func TestCall_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"code":404,"message":"Requested entity was not found."}}`)
	})

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "missing"}, Empty{}, Empty{})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Contains(t, string(reqErr.Body), "Requested entity was not found.")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.True(t, IsRequestError(err))
	assert.Contains(t, err.Error(), "404")
}

func TestCall_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": 42}`)
	})

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.Equal(t, ErrCodeDecodeFailed, Code(err))
	assert.False(t, IsRequestError(err))
}

func TestCall_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `{"id":"i1"}`)
	})

	item, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCall_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCall_RetriesDisabled(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, WithRetries(0))

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCall_AttachesBearerToken(t *testing.T) {
	var auth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `{"id":"i1"}`)
	}, WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "secret-token"})))

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", auth)
}

func TestNewClient_LeavesCallerHTTPClientUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"i1"}`)
	}))
	t.Cleanup(srv.Close)

	hc := srv.Client()
	hc.Timeout = 0
	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(hc), WithTimeout(5*time.Second))

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.NoError(t, err)
	assert.Zero(t, hc.Timeout)
}

type failingTokens struct{}

func (failingTokens) Token() (*oauth2.Token, error) { return nil, io.ErrUnexpectedEOF }

func TestCall_TokenFailureIsRequestError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, WithTokenSource(failingTokens{}))

	_, err := testGet.Call(context.Background(), client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Zero(t, calls.Load())
}

func TestCall_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"i1"}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testGet.Call(ctx, client, testPath{CourseID: "c1", ID: "i1"}, Empty{}, Empty{})
	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.ErrorIs(t, err, context.Canceled)
}
