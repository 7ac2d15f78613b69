package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glassroom/internal/classroom"
)

func sampleCourseWork() []classroom.CourseWork {
	points := 100.0
	return []classroom.CourseWork{
		{
			CourseID:  "c1",
			ID:        "w1",
			Title:     "Essay",
			State:     classroom.PostPublished,
			DueDate:   &classroom.Date{Year: 2026, Month: 11, Day: 2},
			MaxPoints: &points,
		},
		{CourseID: "c1", ID: "w2", Title: "Quiz", State: classroom.PostDraft},
	}
}

// backends runs fn once per Store implementation.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("file", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		fn(t, s)
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		fn(t, s)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "courses", Key("courses"))
	assert.Equal(t, "c1_courseWorks", Key("courseWorks", "c1"))
	assert.Equal(t, "c1_w1_courseWorkSubmissions", Key("courseWorkSubmissions", "c1", "w1"))
}

func TestListRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		want := sampleCourseWork()

		require.NoError(t, WriteList(ctx, s, "c1_courseWorks", want))

		got, err := ReadList[classroom.CourseWork](ctx, s, "c1_courseWorks")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestReadList_MissingKeyIsEmpty(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		got, err := ReadList[classroom.CourseWork](context.Background(), s, "nothing_here")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestClear_Idempotent(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, WriteList(ctx, s, "k", sampleCourseWork()))

		for i := 0; i < 2; i++ {
			require.NoError(t, Clear(ctx, s, "k"))
			got, err := ReadList[classroom.CourseWork](ctx, s, "k")
			require.NoError(t, err)
			assert.Empty(t, got)
		}
	})
}

func TestWriteList_Overwrites(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, WriteList(ctx, s, "k", sampleCourseWork()))
		require.NoError(t, WriteList(ctx, s, "k", sampleCourseWork()[:1]))

		got, err := ReadList[classroom.CourseWork](ctx, s, "k")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestReadList_CorruptDataIsCacheIOError(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Write(ctx, "k", []byte("{not json")))

		_, err := ReadList[classroom.CourseWork](ctx, s, "k")
		require.Error(t, err)
		assert.True(t, IsCacheIOError(err))

		var cacheErr *CacheIOError
		require.ErrorAs(t, err, &cacheErr)
		assert.Equal(t, "decode", cacheErr.Op)
		assert.Equal(t, ErrCodeCacheIO, cacheErr.Code())
	})
}

func TestJSONObjectRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		type settings struct {
			Colors map[string]string `json:"colors"`
		}

		ok, err := ReadJSON(ctx, s, "settings", &settings{})
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, WriteJSON(ctx, s, "settings", settings{Colors: map[string]string{"c1": "red"}}))

		var got settings
		ok, err = ReadJSON(ctx, s, "settings", &got)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "red", got.Colors["c1"])
	})
}

func TestFileStore_Format(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, WriteList(context.Background(), s, Key("courseWorks", "c1"), sampleCourseWork()))

	data, err := os.ReadFile(filepath.Join(dir, "c1_courseWorks.json"))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "courseworks_snapshot", data)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, WriteList(context.Background(), s, "k", sampleCourseWork()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b"} {
		err := s.Write(context.Background(), key, []byte("[]"))
		assert.True(t, IsCacheIOError(err), key)
	}
}

func TestFileStore_UnreadableFileIsCacheIOError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	// A directory where the file should be cannot be read as one.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "k.json"), 0o755))

	_, _, err = s.Read(context.Background(), "k")
	assert.True(t, IsCacheIOError(err))
}

func TestOpenSQLite_Pragmas(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer s.Close()

	mode, err := s.pragma("journal_mode")
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)

	version, err := s.pragma("user_version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, WriteList(ctx, s1, "k", sampleCourseWork()))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := ReadList[classroom.CourseWork](ctx, s2, "k")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, ok, err := s2.UpdatedAt(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	fs, err := Open(BackendFile, dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, fs)

	db, err := Open(BackendSQLite, dir)
	require.NoError(t, err)
	defer db.Close()
	assert.IsType(t, &SQLiteStore{}, db)
	assert.FileExists(t, filepath.Join(dir, sqliteFile))

	_, err = Open("redis", dir)
	assert.Error(t, err)
}
