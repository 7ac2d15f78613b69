package classroom

import (
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/roach88/glassroom/internal/rest"
)

// Service bundles every resource of the classroom API over one Client.
type Service struct {
	Courses       *Courses
	Announcements *Announcements
	CourseWork    *CourseWorks
	Materials     *Materials
	Submissions   *Submissions
	Students      *Students
	Teachers      *Teachers

	client *rest.Client
}

// NewService returns a Service issuing calls through client.
func NewService(client *rest.Client) *Service {
	return &Service{
		Courses:       &Courses{client: client},
		Announcements: &Announcements{client: client},
		CourseWork:    &CourseWorks{client: client},
		Materials:     &Materials{client: client},
		Submissions:   &Submissions{client: client},
		Students:      &Students{client: client},
		Teachers:      &Teachers{client: client},
		client:        client,
	}
}

// Client returns the executor the service calls through.
func (s *Service) Client() *rest.Client {
	return s.client
}

// Endpoints returns every declared endpoint, grouped by resource kind.
func Endpoints() map[Kind][]rest.Descriptor {
	return map[Kind][]rest.Descriptor{
		KindCourses: {courseGet, courseList, coursePatch, courseUpdate},
		KindAnnouncements: {
			announcementCreate, announcementDelete, announcementGet,
			announcementList, announcementPatch, announcementModifyAssignees,
		},
		KindCourseWorks: {
			courseWorkCreate, courseWorkDelete, courseWorkGet,
			courseWorkList, courseWorkPatch,
		},
		KindMaterials: {
			materialCreate, materialDelete, materialGet,
			materialList, materialPatch,
		},
		KindSubmissions: {submissionGet, submissionList, submissionPatch},
		KindStudents:    {studentGet, studentList},
		KindTeachers:    {teacherGet, teacherList},
	}
}

// Kind names a resource kind. The string value is also the cache key
// suffix for lists of that kind.
type Kind string

const (
	KindCourses       Kind = "courses"
	KindAnnouncements Kind = "announcements"
	KindCourseWorks   Kind = "courseWorks"
	KindMaterials     Kind = "courseWorkMaterials"
	KindSubmissions   Kind = "courseWorkSubmissions"
	KindStudents      Kind = "students"
	KindTeachers      Kind = "teachers"
)

// Kinds returns every resource kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindCourses, KindAnnouncements, KindCourseWorks, KindMaterials,
		KindSubmissions, KindStudents, KindTeachers,
	}
}

// ParseKind resolves a kind name, accepting a few short aliases.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "courses", "course":
		return KindCourses, nil
	case "announcements", "announcement":
		return KindAnnouncements, nil
	case "courseWorks", "courseWork", "coursework":
		return KindCourseWorks, nil
	case "courseWorkMaterials", "materials", "material":
		return KindMaterials, nil
	case "courseWorkSubmissions", "submissions", "submission":
		return KindSubmissions, nil
	case "students", "student":
		return KindStudents, nil
	case "teachers", "teacher":
		return KindTeachers, nil
	}
	return "", fmt.Errorf("unknown resource kind %q (want one of %v)", s, Kinds())
}

var itemTypes = map[Kind]any{
	KindCourses:       &Course{},
	KindAnnouncements: &Announcement{},
	KindCourseWorks:   &CourseWork{},
	KindMaterials:     &CourseWorkMaterial{},
	KindSubmissions:   &StudentSubmission{},
	KindStudents:      &Student{},
	KindTeachers:      &Teacher{},
}

// Schema returns the JSON Schema of the item type of kind.
func Schema(kind Kind) (*jsonschema.Schema, error) {
	item, ok := itemTypes[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for kind %q", kind)
	}
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	return r.Reflect(item), nil
}

// Capabilities lists the capabilities declared for kind, sorted.
func Capabilities(kind Kind) []rest.Capability {
	var caps []rest.Capability
	for _, d := range Endpoints()[kind] {
		caps = append(caps, d.Info().Capability)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}
