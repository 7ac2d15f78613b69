package session

import (
	"context"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/glassroom/internal/classroom"
)

// Post is one entry of a course stream: an announcement, a course work
// item or a course work material. Exactly one of the pointers is set.
type Post struct {
	Kind       classroom.Kind
	ID         string
	CourseID   string
	Title      string
	UpdateTime time.Time

	Announcement *classroom.Announcement
	CourseWork   *classroom.CourseWork
	Material     *classroom.CourseWorkMaterial
}

// CoursePosts loads the announcements, course work and materials of a
// course concurrently and merges them, newest update first. Posts whose
// update time cannot be parsed sort last.
//
// The first load error cancels the others and is returned. Each manager
// keeps its own state, so a later call retries only what failed.
func (s *Session) CoursePosts(ctx context.Context, courseID string, bypassCache bool) ([]Post, error) {
	var (
		announcements []classroom.Announcement
		work          []classroom.CourseWork
		materials     []classroom.CourseWorkMaterial
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.Announcements(courseID).LoadList(gctx, bypassCache)
		announcements = snap.Items
		return err
	})
	g.Go(func() error {
		snap, err := s.CourseWork(courseID).LoadList(gctx, bypassCache)
		work = snap.Items
		return err
	})
	g.Go(func() error {
		snap, err := s.Materials(courseID).LoadList(gctx, bypassCache)
		materials = snap.Items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(announcements)+len(work)+len(materials))
	for i := range announcements {
		a := &announcements[i]
		posts = append(posts, Post{
			Kind:         classroom.KindAnnouncements,
			ID:           a.ID,
			CourseID:     a.CourseID,
			Title:        firstLine(a.Text),
			UpdateTime:   parseTime(a.UpdateTime),
			Announcement: a,
		})
	}
	for i := range work {
		w := &work[i]
		posts = append(posts, Post{
			Kind:       classroom.KindCourseWorks,
			ID:         w.ID,
			CourseID:   w.CourseID,
			Title:      w.Title,
			UpdateTime: parseTime(w.UpdateTime),
			CourseWork: w,
		})
	}
	for i := range materials {
		m := &materials[i]
		posts = append(posts, Post{
			Kind:       classroom.KindMaterials,
			ID:         m.ID,
			CourseID:   m.CourseID,
			Title:      m.Title,
			UpdateTime: parseTime(m.UpdateTime),
			Material:   m,
		})
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.UpdateTime.Compare(a.UpdateTime)
	})
	return posts, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
