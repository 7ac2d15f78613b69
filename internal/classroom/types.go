package classroom

// Wire types of the classroom API. Field sets mirror the external schema;
// times are kept as the RFC 3339 strings the API sends so cache snapshots
// round-trip byte for byte.

// CourseState is the lifecycle state of a course.
type CourseState string

const (
	CourseActive      CourseState = "ACTIVE"
	CourseArchived    CourseState = "ARCHIVED"
	CourseProvisioned CourseState = "PROVISIONED"
	CourseDeclined    CourseState = "DECLINED"
	CourseSuspended   CourseState = "SUSPENDED"
)

// Course is a classroom course.
type Course struct {
	ID                 string      `json:"id,omitempty"`
	Name               string      `json:"name,omitempty"`
	Section            string      `json:"section,omitempty"`
	DescriptionHeading string      `json:"descriptionHeading,omitempty"`
	Description        string      `json:"description,omitempty"`
	Room               string      `json:"room,omitempty"`
	OwnerID            string      `json:"ownerId,omitempty"`
	CreationTime       string      `json:"creationTime,omitempty"`
	UpdateTime         string      `json:"updateTime,omitempty"`
	EnrollmentCode     string      `json:"enrollmentCode,omitempty"`
	CourseState        CourseState `json:"courseState,omitempty" validate:"omitempty,oneof=ACTIVE ARCHIVED PROVISIONED DECLINED SUSPENDED"`
	AlternateLink      string      `json:"alternateLink,omitempty" validate:"omitempty,url"`
	TeacherGroupEmail  string      `json:"teacherGroupEmail,omitempty"`
	CourseGroupEmail   string      `json:"courseGroupEmail,omitempty"`
	GuardiansEnabled   bool        `json:"guardiansEnabled,omitempty"`
	CalendarID         string      `json:"calendarId,omitempty"`
}

// PostState is the publication state shared by announcements, course work
// and course work materials.
type PostState string

const (
	PostPublished PostState = "PUBLISHED"
	PostDraft     PostState = "DRAFT"
	PostDeleted   PostState = "DELETED"
)

// AssigneeMode selects who a post is assigned to.
type AssigneeMode string

const (
	AllStudents        AssigneeMode = "ALL_STUDENTS"
	IndividualStudents AssigneeMode = "INDIVIDUAL_STUDENTS"
)

// IndividualStudentsOptions lists the students of an INDIVIDUAL_STUDENTS post.
type IndividualStudentsOptions struct {
	StudentIDs []string `json:"studentIds,omitempty"`
}

// DriveFile is a reference to a Drive item.
type DriveFile struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title,omitempty"`
	AlternateLink string `json:"alternateLink,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
}

// SharedDriveFile is a Drive item plus how it is shared with students.
type SharedDriveFile struct {
	DriveFile DriveFile `json:"driveFile"`
	ShareMode string    `json:"shareMode,omitempty"`
}

// YouTubeVideo is a YouTube video attachment.
type YouTubeVideo struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title,omitempty"`
	AlternateLink string `json:"alternateLink,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
}

// Link is a URL attachment.
type Link struct {
	URL          string `json:"url,omitempty"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Form is a Google Forms attachment.
type Form struct {
	FormURL      string `json:"formUrl,omitempty"`
	ResponseURL  string `json:"responseUrl,omitempty"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Material is one attachment; exactly one field is set.
type Material struct {
	DriveFile    *SharedDriveFile `json:"driveFile,omitempty"`
	YouTubeVideo *YouTubeVideo    `json:"youtubeVideo,omitempty"`
	Link         *Link            `json:"link,omitempty"`
	Form         *Form            `json:"form,omitempty"`
}

// Announcement is a course stream post without a deliverable.
type Announcement struct {
	CourseID                  string                     `json:"courseId,omitempty"`
	ID                        string                     `json:"id,omitempty"`
	Text                      string                     `json:"text,omitempty"`
	Materials                 []Material                 `json:"materials,omitempty"`
	State                     PostState                  `json:"state,omitempty" validate:"omitempty,oneof=PUBLISHED DRAFT DELETED"`
	AlternateLink             string                     `json:"alternateLink,omitempty"`
	CreationTime              string                     `json:"creationTime,omitempty"`
	UpdateTime                string                     `json:"updateTime,omitempty"`
	ScheduledTime             string                     `json:"scheduledTime,omitempty"`
	AssigneeMode              AssigneeMode               `json:"assigneeMode,omitempty" validate:"omitempty,oneof=ALL_STUDENTS INDIVIDUAL_STUDENTS"`
	IndividualStudentsOptions *IndividualStudentsOptions `json:"individualStudentsOptions,omitempty"`
	CreatorUserID             string                     `json:"creatorUserId,omitempty"`
}

// WorkType is the kind of deliverable of a course work item.
type WorkType string

const (
	WorkAssignment             WorkType = "ASSIGNMENT"
	WorkShortAnswerQuestion    WorkType = "SHORT_ANSWER_QUESTION"
	WorkMultipleChoiceQuestion WorkType = "MULTIPLE_CHOICE_QUESTION"
)

// Date is a calendar date without time zone.
type Date struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Day   int `json:"day,omitempty" validate:"omitempty,min=1,max=31"`
}

// TimeOfDay is a wall-clock time (UTC in this API).
type TimeOfDay struct {
	Hours   int `json:"hours,omitempty" validate:"omitempty,min=0,max=23"`
	Minutes int `json:"minutes,omitempty" validate:"omitempty,min=0,max=59"`
	Seconds int `json:"seconds,omitempty" validate:"omitempty,min=0,max=59"`
	Nanos   int `json:"nanos,omitempty"`
}

// CourseWork is an assignment or question given to students.
type CourseWork struct {
	CourseID                   string                     `json:"courseId,omitempty"`
	ID                         string                     `json:"id,omitempty"`
	Title                      string                     `json:"title,omitempty"`
	Description                string                     `json:"description,omitempty"`
	Materials                  []Material                 `json:"materials,omitempty"`
	State                      PostState                  `json:"state,omitempty" validate:"omitempty,oneof=PUBLISHED DRAFT DELETED"`
	AlternateLink              string                     `json:"alternateLink,omitempty"`
	CreationTime               string                     `json:"creationTime,omitempty"`
	UpdateTime                 string                     `json:"updateTime,omitempty"`
	DueDate                    *Date                      `json:"dueDate,omitempty"`
	DueTime                    *TimeOfDay                 `json:"dueTime,omitempty"`
	ScheduledTime              string                     `json:"scheduledTime,omitempty"`
	MaxPoints                  *float64                   `json:"maxPoints,omitempty" validate:"omitempty,gte=0"`
	WorkType                   WorkType                   `json:"workType,omitempty" validate:"omitempty,oneof=ASSIGNMENT SHORT_ANSWER_QUESTION MULTIPLE_CHOICE_QUESTION"`
	AssigneeMode               AssigneeMode               `json:"assigneeMode,omitempty" validate:"omitempty,oneof=ALL_STUDENTS INDIVIDUAL_STUDENTS"`
	IndividualStudentsOptions  *IndividualStudentsOptions `json:"individualStudentsOptions,omitempty"`
	SubmissionModificationMode string                     `json:"submissionModificationMode,omitempty"`
	CreatorUserID              string                     `json:"creatorUserId,omitempty"`
	TopicID                    string                     `json:"topicId,omitempty"`
}

// CourseWorkMaterial is a post of reference material without a deliverable.
type CourseWorkMaterial struct {
	CourseID                  string                     `json:"courseId,omitempty"`
	ID                        string                     `json:"id,omitempty"`
	Title                     string                     `json:"title,omitempty"`
	Description               string                     `json:"description,omitempty"`
	Materials                 []Material                 `json:"materials,omitempty"`
	State                     PostState                  `json:"state,omitempty" validate:"omitempty,oneof=PUBLISHED DRAFT DELETED"`
	AlternateLink             string                     `json:"alternateLink,omitempty"`
	CreationTime              string                     `json:"creationTime,omitempty"`
	UpdateTime                string                     `json:"updateTime,omitempty"`
	ScheduledTime             string                     `json:"scheduledTime,omitempty"`
	AssigneeMode              AssigneeMode               `json:"assigneeMode,omitempty" validate:"omitempty,oneof=ALL_STUDENTS INDIVIDUAL_STUDENTS"`
	IndividualStudentsOptions *IndividualStudentsOptions `json:"individualStudentsOptions,omitempty"`
	CreatorUserID             string                     `json:"creatorUserId,omitempty"`
	TopicID                   string                     `json:"topicId,omitempty"`
}

// SubmissionState is the lifecycle state of a student submission.
type SubmissionState string

const (
	SubmissionNew       SubmissionState = "NEW"
	SubmissionCreated   SubmissionState = "CREATED"
	SubmissionTurnedIn  SubmissionState = "TURNED_IN"
	SubmissionReturned  SubmissionState = "RETURNED"
	SubmissionReclaimed SubmissionState = "RECLAIMED_BY_STUDENT"
)

// StudentSubmission is one student's work on one course work item.
type StudentSubmission struct {
	CourseID                string          `json:"courseId,omitempty"`
	CourseWorkID            string          `json:"courseWorkId,omitempty"`
	ID                      string          `json:"id,omitempty"`
	UserID                  string          `json:"userId,omitempty"`
	CreationTime            string          `json:"creationTime,omitempty"`
	UpdateTime              string          `json:"updateTime,omitempty"`
	State                   SubmissionState `json:"state,omitempty" validate:"omitempty,oneof=NEW CREATED TURNED_IN RETURNED RECLAIMED_BY_STUDENT"`
	Late                    bool            `json:"late,omitempty"`
	DraftGrade              *float64        `json:"draftGrade,omitempty" validate:"omitempty,gte=0"`
	AssignedGrade           *float64        `json:"assignedGrade,omitempty" validate:"omitempty,gte=0"`
	AlternateLink           string          `json:"alternateLink,omitempty"`
	CourseWorkType          WorkType        `json:"courseWorkType,omitempty"`
	AssociatedWithDeveloper bool            `json:"associatedWithDeveloper,omitempty"`
}

// Name is a user's name.
type Name struct {
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
	FullName   string `json:"fullName,omitempty"`
}

// UserProfile is the public profile of a course member.
type UserProfile struct {
	ID           string `json:"id,omitempty"`
	Name         *Name  `json:"name,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	PhotoURL     string `json:"photoUrl,omitempty"`
}

// Student is a course roster entry for a student.
type Student struct {
	CourseID string       `json:"courseId,omitempty"`
	UserID   string       `json:"userId,omitempty"`
	Profile  *UserProfile `json:"profile,omitempty"`
}

// Teacher is a course roster entry for a teacher.
type Teacher struct {
	CourseID string       `json:"courseId,omitempty"`
	UserID   string       `json:"userId,omitempty"`
	Profile  *UserProfile `json:"profile,omitempty"`
}
