package classroom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glassroom/internal/rest"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(rest.NewClient(rest.WithBaseURL(srv.URL), rest.WithRetries(0)))
}

func TestEndpoints_AllValid(t *testing.T) {
	for kind, descriptors := range Endpoints() {
		for _, d := range descriptors {
			info := d.Info()
			t.Run(string(kind)+"/"+string(info.Capability), func(t *testing.T) {
				require.NoError(t, d.Validate())
			})
		}
	}
}

func TestEndpoints_CoverEveryKind(t *testing.T) {
	endpoints := Endpoints()
	for _, kind := range Kinds() {
		assert.NotEmpty(t, endpoints[kind], kind)
	}
}

func TestCapabilities(t *testing.T) {
	assert.Equal(t,
		[]rest.Capability{rest.CapGet, rest.CapList, rest.CapPatch, rest.CapUpdate},
		Capabilities(KindCourses))
	assert.Equal(t,
		[]rest.Capability{rest.CapCreate, rest.CapDelete, rest.CapGet, rest.CapList, rest.CapModifyAssignees, rest.CapPatch},
		Capabilities(KindAnnouncements))
	assert.Equal(t,
		[]rest.Capability{rest.CapGet, rest.CapList, rest.CapPatch},
		Capabilities(KindSubmissions))
	assert.Equal(t,
		[]rest.Capability{rest.CapGet, rest.CapList},
		Capabilities(KindTeachers))
}

func TestMaterialCreate_PostsToCollection(t *testing.T) {
	var gotPath, gotMethod string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"courseId":"c1","id":"m1","title":"Reading"}`)
	})

	got, err := svc.Materials.Create(context.Background(),
		CourseIDParams{CourseID: "c1"}, rest.Empty{}, CourseWorkMaterial{Title: "Reading"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/courses/c1/courseWorkMaterials", gotPath)
	assert.Equal(t, "m1", got.ID)
}

func TestAnnouncementList_EncodesQuery(t *testing.T) {
	var got map[string][]string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/c1/announcements", r.URL.Path)
		got = r.URL.Query()
		_, _ = io.WriteString(w, `{"announcements":[{"id":"a1"},{"id":"a2"}],"nextPageToken":"p2"}`)
	})

	size := 2
	page, err := svc.Announcements.List(context.Background(),
		CourseIDParams{CourseID: "c1"},
		AnnouncementListQuery{
			AnnouncementStates: []PostState{PostPublished, PostDraft},
			PageSize:           &size,
		},
		rest.Empty{})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"announcementStates": {"PUBLISHED,DRAFT"},
		"pageSize":           {"2"},
	}, got)
	assert.Len(t, page.PageItems(), 2)
	assert.Equal(t, "p2", page.PageToken())
}

func TestAnnouncementModifyAssignees(t *testing.T) {
	var body ModifyAssigneesRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/courses/c1/announcements/a1:modifyAssignees", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"id":"a1","assigneeMode":"INDIVIDUAL_STUDENTS"}`)
	})

	got, err := svc.Announcements.ModifyAssignees(context.Background(),
		CourseItemParams{CourseID: "c1", ID: "a1"}, rest.Empty{},
		ModifyAssigneesRequest{
			AssigneeMode: IndividualStudents,
			ModifyIndividualStudentsOptions: &ModifyIndividualStudentsOptions{
				AddStudentIDs: []string{"s1", "s2"},
			},
		})
	require.NoError(t, err)

	assert.Equal(t, IndividualStudents, got.AssigneeMode)
	assert.Equal(t, []string{"s1", "s2"}, body.ModifyIndividualStudentsOptions.AddStudentIDs)
}

func TestCourseWorkPatch_RequiresUpdateMask(t *testing.T) {
	called := false
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.CourseWork.Patch(context.Background(),
		CourseItemParams{CourseID: "c1", ID: "w1"}, UpdateMaskQuery{}, CourseWork{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, rest.ErrCodeInvalidRequest, rest.Code(err))
	assert.False(t, called)
}

func TestCourseWorkPatch_SendsUpdateMask(t *testing.T) {
	var mask string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		mask = r.URL.Query().Get("updateMask")
		_, _ = io.WriteString(w, `{"id":"w1","title":"x","state":"PUBLISHED"}`)
	})

	_, err := svc.CourseWork.Patch(context.Background(),
		CourseItemParams{CourseID: "c1", ID: "w1"},
		UpdateMaskQuery{UpdateMask: []string{"title", "state"}},
		CourseWork{Title: "x", State: PostPublished})
	require.NoError(t, err)
	assert.Equal(t, "title,state", mask)
}

func TestSubmissionGet_MissingCourseWorkID(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := svc.Submissions.Get(context.Background(),
		SubmissionParams{CourseID: "c1", ID: "s1"}, rest.Empty{}, rest.Empty{})
	require.Error(t, err)

	var missing *rest.MissingPathParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "courseWorkId", missing.Name)
}

func TestCourseDelete_NotDeclared(t *testing.T) {
	for _, c := range Capabilities(KindCourses) {
		assert.NotEqual(t, rest.CapDelete, c)
	}
}

func TestSchema(t *testing.T) {
	s, err := Schema(KindCourseWorks)
	require.NoError(t, err)

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "courseId")
	assert.Contains(t, props, "dueDate")

	_, err = Schema("nope")
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"courses":     KindCourses,
		"materials":   KindMaterials,
		"courseWork":  KindCourseWorks,
		"submissions": KindSubmissions,
		"teacher":     KindTeachers,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("grades")
	require.Error(t, err)
}
