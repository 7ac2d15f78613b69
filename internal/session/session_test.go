package session

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glassroom/internal/cache"
	"github.com/roach88/glassroom/internal/classroom"
	"github.com/roach88/glassroom/internal/courseconfig"
	"github.com/roach88/glassroom/internal/manager"
	"github.com/roach88/glassroom/internal/testutil"
)

func newSession(t *testing.T, api *testutil.FakeAPI, opts ...Option) (*Session, *cache.FileStore) {
	t.Helper()
	store, err := cache.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s, err := New(context.Background(), api.Service(), store, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, store
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestSession_SameKeySameManager(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	s, _ := newSession(t, api)

	assert.Same(t, s.CourseWork("c1"), s.CourseWork("c1"))
	assert.NotSame(t, s.CourseWork("c1"), s.CourseWork("c2"))
	assert.Same(t, s.Submissions("c1", "w1"), s.Submissions("c1", "w1"))
	assert.NotSame(t, s.Submissions("c1", "w1"), s.Submissions("c1", "w2"))
}

func TestSession_CacheKeys(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	s, _ := newSession(t, api)

	assert.Equal(t, "courses", s.Courses().Key())
	assert.Equal(t, "c1_announcements", s.Announcements("c1").Key())
	assert.Equal(t, "c1_courseWorks", s.CourseWork("c1").Key())
	assert.Equal(t, "c1_courseWorkMaterials", s.Materials("c1").Key())
	assert.Equal(t, "c1_w1_courseWorkSubmissions", s.Submissions("c1", "w1").Key())
	assert.Equal(t, "c1_students", s.Students("c1").Key())
	assert.Equal(t, "c1_teachers", s.Teachers("c1").Key())
}

func TestSession_LoadPersistsUnderKey(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddCourses(
		classroom.Course{ID: "c1", Name: "Biology"},
		classroom.Course{ID: "c2", Name: "Chemistry"},
		classroom.Course{ID: "c3", Name: "Physics"},
	)
	api.AddSubmissions("c1", "w1", classroom.StudentSubmission{ID: "s1", UserID: "u1"})
	s, store := newSession(t, api)
	ctx := context.Background()

	snap, err := s.Courses().LoadList(ctx, false)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 3)
	assert.Equal(t, 2, api.Count(http.MethodGet, testutil.RouteCourses))

	_, err = s.Submissions("c1", "w1").LoadList(ctx, false)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(store.Dir(), "courses.json"))
	assert.FileExists(t, filepath.Join(store.Dir(), "c1_w1_courseWorkSubmissions.json"))

	cached, err := cache.ReadList[classroom.StudentSubmission](ctx, store, "c1_w1_courseWorkSubmissions")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "s1", cached[0].ID)
}

func TestSession_CoursePostsMergesNewestFirst(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddAnnouncements("c1",
		classroom.Announcement{ID: "a1", CourseID: "c1", Text: "Welcome\nSee you Monday", UpdateTime: "2026-01-03T10:00:00Z"},
		classroom.Announcement{ID: "a2", CourseID: "c1", Text: "Undated"},
	)
	api.AddCourseWork("c1",
		classroom.CourseWork{ID: "w1", CourseID: "c1", Title: "Essay", UpdateTime: "2026-01-05T10:00:00Z"},
		classroom.CourseWork{ID: "w2", CourseID: "c1", Title: "Quiz", UpdateTime: "2026-01-01T10:00:00Z"},
		classroom.CourseWork{ID: "w3", CourseID: "c1", Title: "Lab", UpdateTime: "2026-01-04T10:00:00.5Z"},
	)
	api.AddMaterials("c1",
		classroom.CourseWorkMaterial{ID: "m1", CourseID: "c1", Title: "Syllabus", UpdateTime: "2026-01-02T10:00:00Z"},
	)
	s, _ := newSession(t, api)

	posts, err := s.CoursePosts(context.Background(), "c1", false)
	require.NoError(t, err)

	var ids []string
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"w1", "w3", "a1", "m1", "w2", "a2"}, ids)

	assert.Equal(t, classroom.KindAnnouncements, posts[2].Kind)
	assert.Equal(t, "Welcome", posts[2].Title)
	require.NotNil(t, posts[2].Announcement)
	assert.Nil(t, posts[2].CourseWork)
	require.NotNil(t, posts[3].Material)
	assert.Equal(t, "Syllabus", posts[3].Material.Title)
}

func TestSession_CoursePostsFailure(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddAnnouncements("c1", classroom.Announcement{ID: "a1", CourseID: "c1"})
	api.Fail(http.MethodGet, testutil.RouteMaterials, http.StatusInternalServerError, 1)
	s, _ := newSession(t, api)

	_, err := s.CoursePosts(context.Background(), "c1", false)
	require.Error(t, err)

	// The failed manager recovers on the next call.
	posts, err := s.CoursePosts(context.Background(), "c1", false)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestSession_ClearCache(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddStudents("c1", classroom.Student{UserID: "u1", CourseID: "c1"})
	s, store := newSession(t, api)
	ctx := context.Background()

	_, err := s.Students("c1").LoadList(ctx, false)
	require.NoError(t, err)

	require.NoError(t, s.ClearCache(ctx, classroom.KindStudents, "c1"))
	data, err := os.ReadFile(filepath.Join(store.Dir(), "c1_students.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
	assert.Len(t, s.Students("c1").Snapshot().Items, 1)

	assert.Error(t, s.ClearCache(ctx, classroom.KindSubmissions, "c1"))
	assert.Error(t, s.ClearCache(ctx, classroom.KindCourses, "c1"))
	assert.NoError(t, s.ClearCache(ctx, classroom.KindCourses))
}

func TestSession_CapacityEvicts(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	s, _ := newSession(t, api, WithCapacity(1))

	first := s.Teachers("c1")
	s.Teachers("c2")

	_, err := first.LoadList(context.Background(), false)
	assert.ErrorIs(t, err, manager.ErrClosed)
	assert.NotSame(t, first, s.Teachers("c1"))
}

func TestSession_CloseClosesManagers(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	s, _ := newSession(t, api)

	courses := s.Courses()
	work := s.CourseWork("c1")
	s.Close()

	_, err := courses.LoadList(context.Background(), false)
	assert.ErrorIs(t, err, manager.ErrClosed)
	_, err = work.RefreshList(context.Background(), "", false)
	assert.ErrorIs(t, err, manager.ErrClosed)
}

func TestSession_CourseConfigPersists(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	s, store := newSession(t, api)
	ctx := context.Background()

	s.CourseConfig().ArchiveCourse("c1", courseconfig.GroupEnrolled)
	require.NoError(t, s.SaveCourseConfig(ctx))

	again, err := New(ctx, api.Service(), store)
	require.NoError(t, err)
	defer again.Close()
	assert.True(t, again.CourseConfig().IsArchived("c1"))
}

func TestSession_CorruptCourseConfigFallsBack(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	store, err := cache.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Write(context.Background(), courseconfig.StoreKey, []byte("{")))

	s, err := New(context.Background(), api.Service(), store)
	require.NoError(t, err)
	defer s.Close()
	assert.Empty(t, s.CourseConfig().CourseGroups)
}
