package classroom

import (
	"context"

	"github.com/roach88/glassroom/internal/rest"
)

// Courses exposes the course collection.
type Courses struct {
	client *rest.Client
}

var (
	courseGet = rest.Endpoint[CourseParams, rest.Empty, rest.Empty, Course]{
		Capability: rest.CapGet,
		Template:   "/courses/{id}",
	}
	courseList = rest.Endpoint[rest.Empty, CourseListQuery, rest.Empty, CourseList]{
		Capability: rest.CapList,
		Template:   "/courses",
	}
	coursePatch = rest.Endpoint[CourseParams, UpdateMaskQuery, Course, Course]{
		Capability: rest.CapPatch,
		Template:   "/courses/{id}",
	}
	courseUpdate = rest.Endpoint[CourseParams, rest.Empty, Course, Course]{
		Capability: rest.CapUpdate,
		Template:   "/courses/{id}",
	}
)

var (
	_ rest.Gettable[CourseParams, rest.Empty, rest.Empty, Course]       = (*Courses)(nil)
	_ rest.Listable[rest.Empty, CourseListQuery, rest.Empty, CourseList] = (*Courses)(nil)
	_ rest.Patchable[CourseParams, UpdateMaskQuery, Course, Course]     = (*Courses)(nil)
	_ rest.Updatable[CourseParams, rest.Empty, Course, Course]          = (*Courses)(nil)
)

func (r *Courses) Get(ctx context.Context, p CourseParams, q rest.Empty, b rest.Empty) (Course, error) {
	return courseGet.Call(ctx, r.client, p, q, b)
}

func (r *Courses) List(ctx context.Context, p rest.Empty, q CourseListQuery, b rest.Empty) (CourseList, error) {
	return courseList.Call(ctx, r.client, p, q, b)
}

func (r *Courses) Patch(ctx context.Context, p CourseParams, q UpdateMaskQuery, b Course) (Course, error) {
	return coursePatch.Call(ctx, r.client, p, q, b)
}

func (r *Courses) Update(ctx context.Context, p CourseParams, q rest.Empty, b Course) (Course, error) {
	return courseUpdate.Call(ctx, r.client, p, q, b)
}

// Announcements exposes the announcements of a course.
type Announcements struct {
	client *rest.Client
}

var (
	announcementCreate = rest.Endpoint[CourseIDParams, rest.Empty, Announcement, Announcement]{
		Capability: rest.CapCreate,
		Template:   "/courses/{courseId}/announcements",
	}
	announcementDelete = rest.Endpoint[CourseItemParams, rest.Empty, rest.Empty, rest.Empty]{
		Capability: rest.CapDelete,
		Template:   "/courses/{courseId}/announcements/{id}",
	}
	announcementGet = rest.Endpoint[CourseItemParams, rest.Empty, rest.Empty, Announcement]{
		Capability: rest.CapGet,
		Template:   "/courses/{courseId}/announcements/{id}",
	}
	announcementList = rest.Endpoint[CourseIDParams, AnnouncementListQuery, rest.Empty, AnnouncementList]{
		Capability: rest.CapList,
		Template:   "/courses/{courseId}/announcements",
	}
	announcementPatch = rest.Endpoint[CourseItemParams, UpdateMaskQuery, Announcement, Announcement]{
		Capability: rest.CapPatch,
		Template:   "/courses/{courseId}/announcements/{id}",
	}
	announcementModifyAssignees = rest.Endpoint[CourseItemParams, rest.Empty, ModifyAssigneesRequest, Announcement]{
		Capability: rest.CapModifyAssignees,
		Template:   "/courses/{courseId}/announcements/{id}:modifyAssignees",
	}
)

var (
	_ rest.Creatable[CourseIDParams, rest.Empty, Announcement, Announcement]                    = (*Announcements)(nil)
	_ rest.Deletable[CourseItemParams, rest.Empty, rest.Empty, rest.Empty]                       = (*Announcements)(nil)
	_ rest.Gettable[CourseItemParams, rest.Empty, rest.Empty, Announcement]                      = (*Announcements)(nil)
	_ rest.Listable[CourseIDParams, AnnouncementListQuery, rest.Empty, AnnouncementList]         = (*Announcements)(nil)
	_ rest.Patchable[CourseItemParams, UpdateMaskQuery, Announcement, Announcement]              = (*Announcements)(nil)
	_ rest.AssigneeModifiable[CourseItemParams, rest.Empty, ModifyAssigneesRequest, Announcement] = (*Announcements)(nil)
)

func (r *Announcements) Create(ctx context.Context, p CourseIDParams, q rest.Empty, b Announcement) (Announcement, error) {
	return announcementCreate.Call(ctx, r.client, p, q, b)
}

func (r *Announcements) Delete(ctx context.Context, p CourseItemParams, q rest.Empty, b rest.Empty) (rest.Empty, error) {
	return announcementDelete.Call(ctx, r.client, p, q, b)
}

func (r *Announcements) Get(ctx context.Context, p CourseItemParams, q rest.Empty, b rest.Empty) (Announcement, error) {
	return announcementGet.Call(ctx, r.client, p, q, b)
}

func (r *Announcements) List(ctx context.Context, p CourseIDParams, q AnnouncementListQuery, b rest.Empty) (AnnouncementList, error) {
	return announcementList.Call(ctx, r.client, p, q, b)
}

func (r *Announcements) Patch(ctx context.Context, p CourseItemParams, q UpdateMaskQuery, b Announcement) (Announcement, error) {
	return announcementPatch.Call(ctx, r.client, p, q, b)
}

func (r *Announcements) ModifyAssignees(ctx context.Context, p CourseItemParams, q rest.Empty, b ModifyAssigneesRequest) (Announcement, error) {
	return announcementModifyAssignees.Call(ctx, r.client, p, q, b)
}

// CourseWorks exposes the course work of a course.
type CourseWorks struct {
	client *rest.Client
}

var (
	courseWorkCreate = rest.Endpoint[CourseIDParams, rest.Empty, CourseWork, CourseWork]{
		Capability: rest.CapCreate,
		Template:   "/courses/{courseId}/courseWork",
	}
	courseWorkDelete = rest.Endpoint[CourseItemParams, rest.Empty, rest.Empty, rest.Empty]{
		Capability: rest.CapDelete,
		Template:   "/courses/{courseId}/courseWork/{id}",
	}
	courseWorkGet = rest.Endpoint[CourseItemParams, rest.Empty, rest.Empty, CourseWork]{
		Capability: rest.CapGet,
		Template:   "/courses/{courseId}/courseWork/{id}",
	}
	courseWorkList = rest.Endpoint[CourseIDParams, CourseWorkListQuery, rest.Empty, CourseWorkList]{
		Capability: rest.CapList,
		Template:   "/courses/{courseId}/courseWork",
	}
	courseWorkPatch = rest.Endpoint[CourseItemParams, UpdateMaskQuery, CourseWork, CourseWork]{
		Capability: rest.CapPatch,
		Template:   "/courses/{courseId}/courseWork/{id}",
	}
)

var (
	_ rest.Creatable[CourseIDParams, rest.Empty, CourseWork, CourseWork]            = (*CourseWorks)(nil)
	_ rest.Deletable[CourseItemParams, rest.Empty, rest.Empty, rest.Empty]           = (*CourseWorks)(nil)
	_ rest.Gettable[CourseItemParams, rest.Empty, rest.Empty, CourseWork]            = (*CourseWorks)(nil)
	_ rest.Listable[CourseIDParams, CourseWorkListQuery, rest.Empty, CourseWorkList] = (*CourseWorks)(nil)
	_ rest.Patchable[CourseItemParams, UpdateMaskQuery, CourseWork, CourseWork]      = (*CourseWorks)(nil)
)

func (r *CourseWorks) Create(ctx context.Context, p CourseIDParams, q rest.Empty, b CourseWork) (CourseWork, error) {
	return courseWorkCreate.Call(ctx, r.client, p, q, b)
}

func (r *CourseWorks) Delete(ctx context.Context, p CourseItemParams, q rest.Empty, b rest.Empty) (rest.Empty, error) {
	return courseWorkDelete.Call(ctx, r.client, p, q, b)
}

func (r *CourseWorks) Get(ctx context.Context, p CourseItemParams, q rest.Empty, b rest.Empty) (CourseWork, error) {
	return courseWorkGet.Call(ctx, r.client, p, q, b)
}

func (r *CourseWorks) List(ctx context.Context, p CourseIDParams, q CourseWorkListQuery, b rest.Empty) (CourseWorkList, error) {
	return courseWorkList.Call(ctx, r.client, p, q, b)
}

func (r *CourseWorks) Patch(ctx context.Context, p CourseItemParams, q UpdateMaskQuery, b CourseWork) (CourseWork, error) {
	return courseWorkPatch.Call(ctx, r.client, p, q, b)
}

// Materials exposes the course work materials of a course.
type Materials struct {
	client *rest.Client
}

var (
	materialCreate = rest.Endpoint[CourseIDParams, rest.Empty, CourseWorkMaterial, CourseWorkMaterial]{
		Capability: rest.CapCreate,
		Template:   "/courses/{courseId}/courseWorkMaterials",
	}
	materialDelete = rest.Endpoint[CourseItemParams, rest.Empty, rest.Empty, rest.Empty]{
		Capability: rest.CapDelete,
		Template:   "/courses/{courseId}/courseWorkMaterials/{id}",
	}
	materialGet = rest.Endpoint[CourseItemParams, rest.Empty, rest.Empty, CourseWorkMaterial]{
		Capability: rest.CapGet,
		Template:   "/courses/{courseId}/courseWorkMaterials/{id}",
	}
	materialList = rest.Endpoint[CourseIDParams, MaterialListQuery, rest.Empty, MaterialList]{
		Capability: rest.CapList,
		Template:   "/courses/{courseId}/courseWorkMaterials",
	}
	materialPatch = rest.Endpoint[CourseItemParams, UpdateMaskQuery, CourseWorkMaterial, CourseWorkMaterial]{
		Capability: rest.CapPatch,
		Template:   "/courses/{courseId}/courseWorkMaterials/{id}",
	}
)

var (
	_ rest.Creatable[CourseIDParams, rest.Empty, CourseWorkMaterial, CourseWorkMaterial]       = (*Materials)(nil)
	_ rest.Deletable[CourseItemParams, rest.Empty, rest.Empty, rest.Empty]                      = (*Materials)(nil)
	_ rest.Gettable[CourseItemParams, rest.Empty, rest.Empty, CourseWorkMaterial]               = (*Materials)(nil)
	_ rest.Listable[CourseIDParams, MaterialListQuery, rest.Empty, MaterialList]                = (*Materials)(nil)
	_ rest.Patchable[CourseItemParams, UpdateMaskQuery, CourseWorkMaterial, CourseWorkMaterial] = (*Materials)(nil)
)

func (r *Materials) Create(ctx context.Context, p CourseIDParams, q rest.Empty, b CourseWorkMaterial) (CourseWorkMaterial, error) {
	return materialCreate.Call(ctx, r.client, p, q, b)
}

func (r *Materials) Delete(ctx context.Context, p CourseItemParams, q rest.Empty, b rest.Empty) (rest.Empty, error) {
	return materialDelete.Call(ctx, r.client, p, q, b)
}

func (r *Materials) Get(ctx context.Context, p CourseItemParams, q rest.Empty, b rest.Empty) (CourseWorkMaterial, error) {
	return materialGet.Call(ctx, r.client, p, q, b)
}

func (r *Materials) List(ctx context.Context, p CourseIDParams, q MaterialListQuery, b rest.Empty) (MaterialList, error) {
	return materialList.Call(ctx, r.client, p, q, b)
}

func (r *Materials) Patch(ctx context.Context, p CourseItemParams, q UpdateMaskQuery, b CourseWorkMaterial) (CourseWorkMaterial, error) {
	return materialPatch.Call(ctx, r.client, p, q, b)
}

// Submissions exposes the student submissions of a course work item.
type Submissions struct {
	client *rest.Client
}

var (
	submissionGet = rest.Endpoint[SubmissionParams, rest.Empty, rest.Empty, StudentSubmission]{
		Capability: rest.CapGet,
		Template:   "/courses/{courseId}/courseWork/{courseWorkId}/studentSubmissions/{id}",
	}
	submissionList = rest.Endpoint[CourseWorkParams, SubmissionListQuery, rest.Empty, SubmissionList]{
		Capability: rest.CapList,
		Template:   "/courses/{courseId}/courseWork/{courseWorkId}/studentSubmissions",
	}
	submissionPatch = rest.Endpoint[SubmissionParams, UpdateMaskQuery, StudentSubmission, StudentSubmission]{
		Capability: rest.CapPatch,
		Template:   "/courses/{courseId}/courseWork/{courseWorkId}/studentSubmissions/{id}",
	}
)

var (
	_ rest.Gettable[SubmissionParams, rest.Empty, rest.Empty, StudentSubmission]              = (*Submissions)(nil)
	_ rest.Listable[CourseWorkParams, SubmissionListQuery, rest.Empty, SubmissionList]        = (*Submissions)(nil)
	_ rest.Patchable[SubmissionParams, UpdateMaskQuery, StudentSubmission, StudentSubmission] = (*Submissions)(nil)
)

func (r *Submissions) Get(ctx context.Context, p SubmissionParams, q rest.Empty, b rest.Empty) (StudentSubmission, error) {
	return submissionGet.Call(ctx, r.client, p, q, b)
}

func (r *Submissions) List(ctx context.Context, p CourseWorkParams, q SubmissionListQuery, b rest.Empty) (SubmissionList, error) {
	return submissionList.Call(ctx, r.client, p, q, b)
}

func (r *Submissions) Patch(ctx context.Context, p SubmissionParams, q UpdateMaskQuery, b StudentSubmission) (StudentSubmission, error) {
	return submissionPatch.Call(ctx, r.client, p, q, b)
}

// Students exposes the student roster of a course.
type Students struct {
	client *rest.Client
}

var (
	studentGet = rest.Endpoint[RosterParams, rest.Empty, rest.Empty, Student]{
		Capability: rest.CapGet,
		Template:   "/courses/{courseId}/students/{userId}",
	}
	studentList = rest.Endpoint[CourseIDParams, RosterListQuery, rest.Empty, StudentList]{
		Capability: rest.CapList,
		Template:   "/courses/{courseId}/students",
	}
)

var (
	_ rest.Gettable[RosterParams, rest.Empty, rest.Empty, Student]          = (*Students)(nil)
	_ rest.Listable[CourseIDParams, RosterListQuery, rest.Empty, StudentList] = (*Students)(nil)
)

func (r *Students) Get(ctx context.Context, p RosterParams, q rest.Empty, b rest.Empty) (Student, error) {
	return studentGet.Call(ctx, r.client, p, q, b)
}

func (r *Students) List(ctx context.Context, p CourseIDParams, q RosterListQuery, b rest.Empty) (StudentList, error) {
	return studentList.Call(ctx, r.client, p, q, b)
}

// Teachers exposes the teacher roster of a course.
type Teachers struct {
	client *rest.Client
}

var (
	teacherGet = rest.Endpoint[RosterParams, rest.Empty, rest.Empty, Teacher]{
		Capability: rest.CapGet,
		Template:   "/courses/{courseId}/teachers/{userId}",
	}
	teacherList = rest.Endpoint[CourseIDParams, RosterListQuery, rest.Empty, TeacherList]{
		Capability: rest.CapList,
		Template:   "/courses/{courseId}/teachers",
	}
)

var (
	_ rest.Gettable[RosterParams, rest.Empty, rest.Empty, Teacher]          = (*Teachers)(nil)
	_ rest.Listable[CourseIDParams, RosterListQuery, rest.Empty, TeacherList] = (*Teachers)(nil)
)

func (r *Teachers) Get(ctx context.Context, p RosterParams, q rest.Empty, b rest.Empty) (Teacher, error) {
	return teacherGet.Call(ctx, r.client, p, q, b)
}

func (r *Teachers) List(ctx context.Context, p CourseIDParams, q RosterListQuery, b rest.Empty) (TeacherList, error) {
	return teacherList.Call(ctx, r.client, p, q, b)
}
