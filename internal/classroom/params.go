package classroom

import (
	"github.com/roach88/glassroom/internal/rest"
)

// CourseParams addresses a single course.
type CourseParams struct {
	ID string
}

func (p CourseParams) PathValues() map[string]string {
	return map[string]string{"id": p.ID}
}

// CourseIDParams addresses a collection under a course.
type CourseIDParams struct {
	CourseID string
}

func (p CourseIDParams) PathValues() map[string]string {
	return map[string]string{"courseId": p.CourseID}
}

// CourseItemParams addresses one post under a course.
type CourseItemParams struct {
	CourseID string
	ID       string
}

func (p CourseItemParams) PathValues() map[string]string {
	return map[string]string{"courseId": p.CourseID, "id": p.ID}
}

// CourseWorkParams addresses the submissions of one course work item.
type CourseWorkParams struct {
	CourseID     string
	CourseWorkID string
}

func (p CourseWorkParams) PathValues() map[string]string {
	return map[string]string{"courseId": p.CourseID, "courseWorkId": p.CourseWorkID}
}

// SubmissionParams addresses one student submission.
type SubmissionParams struct {
	CourseID     string
	CourseWorkID string
	ID           string
}

func (p SubmissionParams) PathValues() map[string]string {
	return map[string]string{"courseId": p.CourseID, "courseWorkId": p.CourseWorkID, "id": p.ID}
}

// RosterParams addresses one student or teacher of a course. UserID may be
// a numeric id, an email address, or "me".
type RosterParams struct {
	CourseID string
	UserID   string
}

func (p RosterParams) PathValues() map[string]string {
	return map[string]string{"courseId": p.CourseID, "userId": p.UserID}
}

// UpdateMaskQuery lists the fields a patch touches. Sent comma-joined.
type UpdateMaskQuery struct {
	UpdateMask []string `validate:"min=1,dive,required"`
}

func (q UpdateMaskQuery) QueryValues() map[string]string {
	v := rest.Values{}
	rest.SetList(v, "updateMask", q.UpdateMask)
	return v
}

// CourseListQuery filters the courses list.
type CourseListQuery struct {
	StudentID    string
	TeacherID    string
	CourseStates []CourseState `validate:"dive,oneof=ACTIVE ARCHIVED PROVISIONED DECLINED SUSPENDED"`
	PageSize     *int          `validate:"omitempty,gte=0"`
	PageToken    string
}

func (q CourseListQuery) QueryValues() map[string]string {
	v := rest.Values{}
	v.Set("studentId", q.StudentID)
	v.Set("teacherId", q.TeacherID)
	rest.SetList(v, "courseStates", q.CourseStates)
	v.SetInt("pageSize", q.PageSize)
	v.Set("pageToken", q.PageToken)
	return v
}

func (q CourseListQuery) WithPageToken(token string) CourseListQuery {
	q.PageToken = token
	return q
}

// AnnouncementListQuery filters the announcements of a course.
type AnnouncementListQuery struct {
	AnnouncementStates []PostState `validate:"dive,oneof=PUBLISHED DRAFT DELETED"`
	OrderBy            string
	PageSize           *int `validate:"omitempty,gte=0"`
	PageToken          string
}

func (q AnnouncementListQuery) QueryValues() map[string]string {
	v := rest.Values{}
	rest.SetList(v, "announcementStates", q.AnnouncementStates)
	v.Set("orderBy", q.OrderBy)
	v.SetInt("pageSize", q.PageSize)
	v.Set("pageToken", q.PageToken)
	return v
}

func (q AnnouncementListQuery) WithPageToken(token string) AnnouncementListQuery {
	q.PageToken = token
	return q
}

// CourseWorkListQuery filters the course work of a course.
type CourseWorkListQuery struct {
	CourseWorkStates []PostState `validate:"dive,oneof=PUBLISHED DRAFT DELETED"`
	OrderBy          string
	PageSize         *int `validate:"omitempty,gte=0"`
	PageToken        string
}

func (q CourseWorkListQuery) QueryValues() map[string]string {
	v := rest.Values{}
	rest.SetList(v, "courseWorkStates", q.CourseWorkStates)
	v.Set("orderBy", q.OrderBy)
	v.SetInt("pageSize", q.PageSize)
	v.Set("pageToken", q.PageToken)
	return v
}

func (q CourseWorkListQuery) WithPageToken(token string) CourseWorkListQuery {
	q.PageToken = token
	return q
}

// MaterialListQuery filters the course work materials of a course.
// MaterialLink and MaterialDriveID restrict results to items attaching
// that link or Drive file.
type MaterialListQuery struct {
	CourseWorkMaterialStates []PostState `validate:"dive,oneof=PUBLISHED DRAFT DELETED"`
	OrderBy                  string
	PageSize                 *int `validate:"omitempty,gte=0"`
	PageToken                string
	MaterialLink             string `validate:"omitempty,url"`
	MaterialDriveID          string
}

func (q MaterialListQuery) QueryValues() map[string]string {
	v := rest.Values{}
	rest.SetList(v, "courseWorkMaterialStates", q.CourseWorkMaterialStates)
	v.Set("orderBy", q.OrderBy)
	v.SetInt("pageSize", q.PageSize)
	v.Set("pageToken", q.PageToken)
	v.Set("materialLink", q.MaterialLink)
	v.Set("materialDriveId", q.MaterialDriveID)
	return v
}

func (q MaterialListQuery) WithPageToken(token string) MaterialListQuery {
	q.PageToken = token
	return q
}

// SubmissionListQuery filters the submissions of a course work item.
// CourseWorkID "-" in the path lists submissions across all course work.
type SubmissionListQuery struct {
	UserID    string
	States    []SubmissionState `validate:"dive,oneof=NEW CREATED TURNED_IN RETURNED RECLAIMED_BY_STUDENT"`
	Late      string            `validate:"omitempty,oneof=LATE_VALUES_UNSPECIFIED LATE_ONLY NOT_LATE_ONLY"`
	PageSize  *int              `validate:"omitempty,gte=0"`
	PageToken string
}

func (q SubmissionListQuery) QueryValues() map[string]string {
	v := rest.Values{}
	v.Set("userId", q.UserID)
	rest.SetList(v, "states", q.States)
	v.Set("late", q.Late)
	v.SetInt("pageSize", q.PageSize)
	v.Set("pageToken", q.PageToken)
	return v
}

func (q SubmissionListQuery) WithPageToken(token string) SubmissionListQuery {
	q.PageToken = token
	return q
}

// RosterListQuery pages through students or teachers.
type RosterListQuery struct {
	PageSize  *int `validate:"omitempty,gte=0"`
	PageToken string
}

func (q RosterListQuery) QueryValues() map[string]string {
	v := rest.Values{}
	v.SetInt("pageSize", q.PageSize)
	v.Set("pageToken", q.PageToken)
	return v
}

func (q RosterListQuery) WithPageToken(token string) RosterListQuery {
	q.PageToken = token
	return q
}

// ModifyIndividualStudentsOptions adds and removes individual assignees.
type ModifyIndividualStudentsOptions struct {
	AddStudentIDs    []string `json:"addStudentIds,omitempty"`
	RemoveStudentIDs []string `json:"removeStudentIds,omitempty"`
}

// ModifyAssigneesRequest is the body of a modifyAssignees call.
type ModifyAssigneesRequest struct {
	AssigneeMode                    AssigneeMode                     `json:"assigneeMode" validate:"required,oneof=ALL_STUDENTS INDIVIDUAL_STUDENTS"`
	ModifyIndividualStudentsOptions *ModifyIndividualStudentsOptions `json:"modifyIndividualStudentsOptions,omitempty"`
}
