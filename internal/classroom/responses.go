package classroom

// List response envelopes. Each implements rest.Page for its item type and
// rest.PageTokenSetter so a Link-header token can be filled in.

// CourseList is one page of courses.
type CourseList struct {
	Courses       []Course `json:"courses"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

func (l CourseList) PageItems() []Course { return l.Courses }
func (l CourseList) PageToken() string { return l.NextPageToken }
func (l *CourseList) SetNextPageToken(token string) { l.NextPageToken = token }

// AnnouncementList is one page of announcements.
type AnnouncementList struct {
	Announcements []Announcement `json:"announcements"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

func (l AnnouncementList) PageItems() []Announcement { return l.Announcements }
func (l AnnouncementList) PageToken() string { return l.NextPageToken }
func (l *AnnouncementList) SetNextPageToken(token string) { l.NextPageToken = token }

// CourseWorkList is one page of course work.
type CourseWorkList struct {
	CourseWork    []CourseWork `json:"courseWork"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
}

func (l CourseWorkList) PageItems() []CourseWork { return l.CourseWork }
func (l CourseWorkList) PageToken() string { return l.NextPageToken }
func (l *CourseWorkList) SetNextPageToken(token string) { l.NextPageToken = token }

// MaterialList is one page of course work materials.
type MaterialList struct {
	CourseWorkMaterial []CourseWorkMaterial `json:"courseWorkMaterial"`
	NextPageToken      string               `json:"nextPageToken,omitempty"`
}

func (l MaterialList) PageItems() []CourseWorkMaterial { return l.CourseWorkMaterial }
func (l MaterialList) PageToken() string { return l.NextPageToken }
func (l *MaterialList) SetNextPageToken(token string) { l.NextPageToken = token }

// SubmissionList is one page of student submissions.
type SubmissionList struct {
	StudentSubmissions []StudentSubmission `json:"studentSubmissions"`
	NextPageToken      string              `json:"nextPageToken,omitempty"`
}

func (l SubmissionList) PageItems() []StudentSubmission { return l.StudentSubmissions }
func (l SubmissionList) PageToken() string { return l.NextPageToken }
func (l *SubmissionList) SetNextPageToken(token string) { l.NextPageToken = token }

// StudentList is one page of a course's students.
type StudentList struct {
	Students      []Student `json:"students"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

func (l StudentList) PageItems() []Student { return l.Students }
func (l StudentList) PageToken() string { return l.NextPageToken }
func (l *StudentList) SetNextPageToken(token string) { l.NextPageToken = token }

// TeacherList is one page of a course's teachers.
type TeacherList struct {
	Teachers      []Teacher `json:"teachers"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

func (l TeacherList) PageItems() []Teacher { return l.Teachers }
func (l TeacherList) PageToken() string { return l.NextPageToken }
func (l *TeacherList) SetNextPageToken(token string) { l.NextPageToken = token }
