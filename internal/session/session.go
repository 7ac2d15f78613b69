// Package session ties the classroom service, the cache store, the course
// configuration and every data manager together into one context object.
//
// A Session replaces process-wide registries: callers create one per
// signed-in user and close it on sign-out.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/glassroom/internal/cache"
	"github.com/roach88/glassroom/internal/classroom"
	"github.com/roach88/glassroom/internal/courseconfig"
	"github.com/roach88/glassroom/internal/manager"
	"github.com/roach88/glassroom/internal/rest"
)

// DefaultCapacity bounds each per-course registry.
const DefaultCapacity = 64

// WorkKey identifies the submissions of one course work item.
type WorkKey struct {
	CourseID     string
	CourseWorkID string
}

// Session owns the managers of one user.
//
// Thread-safety: all methods are safe for concurrent use. The returned
// course configuration is not; callers serialize edits to it.
type Session struct {
	svc    *classroom.Service
	store  cache.Store
	config *courseconfig.Config
	logger *slog.Logger

	courses       *manager.Manager[classroom.Course]
	announcements *manager.Registry[string, classroom.Announcement]
	courseWork    *manager.Registry[string, classroom.CourseWork]
	materials     *manager.Registry[string, classroom.CourseWorkMaterial]
	submissions   *manager.Registry[WorkKey, classroom.StudentSubmission]
	students      *manager.Registry[string, classroom.Student]
	teachers      *manager.Registry[string, classroom.Teacher]
}

// Option configures a Session.
type Option func(*options)

type options struct {
	capacity int
	logger   *slog.Logger
}

// WithCapacity sets how many managers each per-course registry keeps
// before evicting the least recently used one. Zero or less means
// unbounded.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger handed to every manager.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a Session and loads the course configuration from store.
// A nil store disables caching and starts from an empty configuration.
func New(ctx context.Context, svc *classroom.Service, store cache.Store, opts ...Option) (*Session, error) {
	if svc == nil {
		return nil, fmt.Errorf("session needs a classroom service")
	}
	o := options{capacity: DefaultCapacity, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := courseconfig.New()
	if store != nil {
		loaded, err := courseconfig.Load(ctx, store)
		if err != nil {
			o.logger.Warn("course configuration unreadable, using defaults", "error", err)
		} else {
			cfg = loaded
		}
	}

	s := &Session{svc: svc, store: store, config: cfg, logger: o.logger}
	mopts := []manager.Option{manager.WithLogger(o.logger)}

	s.courses = manager.New(
		cache.Key(string(classroom.KindCourses)),
		manager.Pager[classroom.Course](svc.Courses.List, rest.Empty{}, classroom.CourseListQuery{}),
		store, mopts...,
	)
	s.announcements = manager.NewRegistry(o.capacity, func(courseID string) *manager.Manager[classroom.Announcement] {
		return manager.New(
			cache.Key(string(classroom.KindAnnouncements), courseID),
			manager.Pager[classroom.Announcement](svc.Announcements.List,
				classroom.CourseIDParams{CourseID: courseID}, classroom.AnnouncementListQuery{}),
			store, mopts...,
		)
	})
	s.courseWork = manager.NewRegistry(o.capacity, func(courseID string) *manager.Manager[classroom.CourseWork] {
		return manager.New(
			cache.Key(string(classroom.KindCourseWorks), courseID),
			manager.Pager[classroom.CourseWork](svc.CourseWork.List,
				classroom.CourseIDParams{CourseID: courseID}, classroom.CourseWorkListQuery{}),
			store, mopts...,
		)
	})
	s.materials = manager.NewRegistry(o.capacity, func(courseID string) *manager.Manager[classroom.CourseWorkMaterial] {
		return manager.New(
			cache.Key(string(classroom.KindMaterials), courseID),
			manager.Pager[classroom.CourseWorkMaterial](svc.Materials.List,
				classroom.CourseIDParams{CourseID: courseID}, classroom.MaterialListQuery{}),
			store, mopts...,
		)
	})
	s.submissions = manager.NewRegistry(o.capacity, func(k WorkKey) *manager.Manager[classroom.StudentSubmission] {
		return manager.New(
			cache.Key(string(classroom.KindSubmissions), k.CourseID, k.CourseWorkID),
			manager.Pager[classroom.StudentSubmission](svc.Submissions.List,
				classroom.CourseWorkParams{CourseID: k.CourseID, CourseWorkID: k.CourseWorkID},
				classroom.SubmissionListQuery{}),
			store, mopts...,
		)
	})
	s.students = manager.NewRegistry(o.capacity, func(courseID string) *manager.Manager[classroom.Student] {
		return manager.New(
			cache.Key(string(classroom.KindStudents), courseID),
			manager.Pager[classroom.Student](svc.Students.List,
				classroom.CourseIDParams{CourseID: courseID}, classroom.RosterListQuery{}),
			store, mopts...,
		)
	})
	s.teachers = manager.NewRegistry(o.capacity, func(courseID string) *manager.Manager[classroom.Teacher] {
		return manager.New(
			cache.Key(string(classroom.KindTeachers), courseID),
			manager.Pager[classroom.Teacher](svc.Teachers.List,
				classroom.CourseIDParams{CourseID: courseID}, classroom.RosterListQuery{}),
			store, mopts...,
		)
	})
	return s, nil
}

// Service returns the classroom service the managers fetch through.
func (s *Session) Service() *classroom.Service { return s.svc }

// Store returns the cache store, or nil when caching is disabled.
func (s *Session) Store() cache.Store { return s.store }

// CourseConfig returns the course configuration.
func (s *Session) CourseConfig() *courseconfig.Config { return s.config }

// SaveCourseConfig persists the course configuration.
func (s *Session) SaveCourseConfig(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.config.Save(ctx, s.store)
}

// Courses returns the manager of the user's course list.
func (s *Session) Courses() *manager.Manager[classroom.Course] { return s.courses }

// Announcements returns the announcements manager of a course.
func (s *Session) Announcements(courseID string) *manager.Manager[classroom.Announcement] {
	return s.announcements.Get(courseID)
}

// CourseWork returns the course work manager of a course.
func (s *Session) CourseWork(courseID string) *manager.Manager[classroom.CourseWork] {
	return s.courseWork.Get(courseID)
}

// Materials returns the course work materials manager of a course.
func (s *Session) Materials(courseID string) *manager.Manager[classroom.CourseWorkMaterial] {
	return s.materials.Get(courseID)
}

// Submissions returns the submissions manager of a course work item.
func (s *Session) Submissions(courseID, courseWorkID string) *manager.Manager[classroom.StudentSubmission] {
	return s.submissions.Get(WorkKey{CourseID: courseID, CourseWorkID: courseWorkID})
}

// Students returns the student roster manager of a course.
func (s *Session) Students(courseID string) *manager.Manager[classroom.Student] {
	return s.students.Get(courseID)
}

// Teachers returns the teacher roster manager of a course.
func (s *Session) Teachers(courseID string) *manager.Manager[classroom.Teacher] {
	return s.teachers.Get(courseID)
}

// ClearCache empties the cached list of kind for the given owner ids:
// none for courses, the course id for per-course kinds, and course and
// course work ids for submissions.
func (s *Session) ClearCache(ctx context.Context, kind classroom.Kind, ids ...string) error {
	want := 1
	switch kind {
	case classroom.KindCourses:
		want = 0
	case classroom.KindSubmissions:
		want = 2
	}
	if len(ids) != want {
		return fmt.Errorf("%s cache needs %d id(s), got %d", kind, want, len(ids))
	}

	switch kind {
	case classroom.KindCourses:
		return s.courses.ClearCache(ctx)
	case classroom.KindAnnouncements:
		return s.Announcements(ids[0]).ClearCache(ctx)
	case classroom.KindCourseWorks:
		return s.CourseWork(ids[0]).ClearCache(ctx)
	case classroom.KindMaterials:
		return s.Materials(ids[0]).ClearCache(ctx)
	case classroom.KindSubmissions:
		return s.Submissions(ids[0], ids[1]).ClearCache(ctx)
	case classroom.KindStudents:
		return s.Students(ids[0]).ClearCache(ctx)
	case classroom.KindTeachers:
		return s.Teachers(ids[0]).ClearCache(ctx)
	default:
		return fmt.Errorf("unknown resource kind %q", kind)
	}
}

// Close closes every manager, cancelling in-flight refreshes. The store is
// left open; it belongs to the caller.
func (s *Session) Close() {
	s.courses.Close()
	s.announcements.Close()
	s.courseWork.Close()
	s.materials.Close()
	s.submissions.Close()
	s.students.Close()
	s.teachers.Close()
}
