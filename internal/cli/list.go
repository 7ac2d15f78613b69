package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/glassroom/internal/classroom"
	"github.com/roach88/glassroom/internal/manager"
	"github.com/roach88/glassroom/internal/session"
)

// ListOptions holds flags for the list commands.
type ListOptions struct {
	*RootOptions
	Refresh      bool
	CourseID     string
	CourseWorkID string
}

// ListResult is the JSON payload of list commands.
type ListResult struct {
	Kind          classroom.Kind `json:"kind"`
	Count         int            `json:"count"`
	Items         any            `json:"items"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

// CourseView is a course as shown to the user: display name and color
// applied from the course configuration.
type CourseView struct {
	classroom.Course
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
	Archived    bool   `json:"archived"`
}

// NewCoursesCommand creates the courses command.
func NewCoursesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List your courses",
		Long: `List your courses with their display names and colors.

The list is served from the cache when one exists. Use --refresh to fetch
it again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourses(opts, cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")
	return cmd
}

func runCourses(opts *ListOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	s, err := e.Session(cmd.Context())
	if err != nil {
		return err
	}
	snap, err := s.Courses().LoadList(cmd.Context(), opts.Refresh)
	if err != nil {
		return e.fail("failed to load courses", err)
	}

	cc := s.CourseConfig()
	views := make([]CourseView, 0, len(snap.Items))
	for _, c := range snap.Items {
		views = append(views, CourseView{
			Course:      c,
			DisplayName: cc.NameFor(c.Name),
			Color:       cc.ColorFor(c.ID).Hex(),
			Archived:    cc.IsArchived(c.ID),
		})
	}

	if e.out.Format == "json" {
		return e.out.Success(ListResult{Kind: classroom.KindCourses, Count: len(views), Items: views})
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		name := v.DisplayName
		if v.Archived {
			name += " (archived)"
		}
		rows = append(rows, []string{v.ID, v.Color, string(v.CourseState), name})
	}
	return e.out.Table([]string{"ID", "COLOR", "STATE", "NAME"}, rows)
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List resources of one kind",
		Long: `List resources of one kind through the cache.

Kinds: courses, announcements, courseWorks, courseWorkMaterials,
courseWorkSubmissions, students, teachers.

Example:
  glassroom list courseWorks --course 123
  glassroom list submissions --course 123 --course-work 456 --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}
	addListFlags(cmd, opts)
	return cmd
}

func addListFlags(cmd *cobra.Command, opts *ListOptions) {
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&opts.CourseID, "course", "", "course id")
	cmd.Flags().StringVar(&opts.CourseWorkID, "course-work", "", "course work id (submissions)")
}

func runList(opts *ListOptions, kindName string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)
	kind, err := classroom.ParseKind(kindName)
	if err != nil {
		return usageError(out, err.Error())
	}
	if err := requireOwner(out, kind, opts.CourseID, opts.CourseWorkID); err != nil {
		return err
	}

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()
	s, err := e.Session(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch kind {
	case classroom.KindCourses:
		return printList(ctx, e, kind, s.Courses(), opts.Refresh, courseRow)
	case classroom.KindAnnouncements:
		return printList(ctx, e, kind, s.Announcements(opts.CourseID), opts.Refresh, announcementRow)
	case classroom.KindCourseWorks:
		return printList(ctx, e, kind, s.CourseWork(opts.CourseID), opts.Refresh, courseWorkRow)
	case classroom.KindMaterials:
		return printList(ctx, e, kind, s.Materials(opts.CourseID), opts.Refresh, materialRow)
	case classroom.KindSubmissions:
		return printList(ctx, e, kind, s.Submissions(opts.CourseID, opts.CourseWorkID), opts.Refresh, submissionRow)
	case classroom.KindStudents:
		return printList(ctx, e, kind, s.Students(opts.CourseID), opts.Refresh, studentRow)
	case classroom.KindTeachers:
		return printList(ctx, e, kind, s.Teachers(opts.CourseID), opts.Refresh, teacherRow)
	}
	return usageError(out, fmt.Sprintf("cannot list %s", kind))
}

// requireOwner checks that the ids owning a kind's list were given.
func requireOwner(out *OutputFormatter, kind classroom.Kind, courseID, courseWorkID string) error {
	if kind != classroom.KindCourses && courseID == "" {
		return usageError(out, fmt.Sprintf("%s needs --course", kind))
	}
	if kind == classroom.KindSubmissions && courseWorkID == "" {
		return usageError(out, fmt.Sprintf("%s needs --course-work", kind))
	}
	return nil
}

// ownerIDs returns the ids owning a kind's list, in cache key order.
func ownerIDs(kind classroom.Kind, courseID, courseWorkID string) []string {
	switch kind {
	case classroom.KindCourses:
		return nil
	case classroom.KindSubmissions:
		return []string{courseID, courseWorkID}
	default:
		return []string{courseID}
	}
}

// tableRow renders one item for text output.
type tableRow[T any] struct {
	headers []string
	cells   func(T) []string
}

func printList[T any](ctx context.Context, e *env, kind classroom.Kind, m *manager.Manager[T], refresh bool, row tableRow[T]) error {
	snap, err := m.LoadList(ctx, refresh)
	if err != nil {
		return e.fail(fmt.Sprintf("failed to load %s", kind), err)
	}
	e.out.VerboseLog("%s: %d item(s), status %s", m.Key(), len(snap.Items), snap.Status)

	if e.out.Format == "json" {
		return e.out.Success(ListResult{
			Kind:          kind,
			Count:         len(snap.Items),
			Items:         snap.Items,
			NextPageToken: snap.NextPageToken,
		})
	}
	rows := make([][]string, 0, len(snap.Items))
	for _, item := range snap.Items {
		rows = append(rows, row.cells(item))
	}
	return e.out.Table(row.headers, rows)
}

var (
	courseRow = tableRow[classroom.Course]{
		headers: []string{"ID", "STATE", "SECTION", "NAME"},
		cells: func(c classroom.Course) []string {
			return []string{c.ID, string(c.CourseState), c.Section, c.Name}
		},
	}
	announcementRow = tableRow[classroom.Announcement]{
		headers: []string{"ID", "STATE", "UPDATED", "TEXT"},
		cells: func(a classroom.Announcement) []string {
			return []string{a.ID, string(a.State), a.UpdateTime, oneLine(a.Text)}
		},
	}
	courseWorkRow = tableRow[classroom.CourseWork]{
		headers: []string{"ID", "STATE", "DUE", "TITLE"},
		cells: func(w classroom.CourseWork) []string {
			return []string{w.ID, string(w.State), formatDue(w.DueDate, w.DueTime), w.Title}
		},
	}
	materialRow = tableRow[classroom.CourseWorkMaterial]{
		headers: []string{"ID", "STATE", "UPDATED", "TITLE"},
		cells: func(m classroom.CourseWorkMaterial) []string {
			return []string{m.ID, string(m.State), m.UpdateTime, m.Title}
		},
	}
	submissionRow = tableRow[classroom.StudentSubmission]{
		headers: []string{"ID", "USER", "STATE", "LATE", "GRADE"},
		cells: func(s classroom.StudentSubmission) []string {
			return []string{s.ID, s.UserID, string(s.State), strconv.FormatBool(s.Late), formatGrade(s.AssignedGrade)}
		},
	}
	studentRow = tableRow[classroom.Student]{
		headers: []string{"USER", "NAME", "EMAIL"},
		cells: func(s classroom.Student) []string {
			return rosterCells(s.UserID, s.Profile)
		},
	}
	teacherRow = tableRow[classroom.Teacher]{
		headers: []string{"USER", "NAME", "EMAIL"},
		cells: func(t classroom.Teacher) []string {
			return rosterCells(t.UserID, t.Profile)
		},
	}
)

func rosterCells(userID string, p *classroom.UserProfile) []string {
	if p == nil {
		return []string{userID, "", ""}
	}
	name := ""
	if p.Name != nil {
		name = p.Name.FullName
	}
	return []string{userID, name, p.EmailAddress}
}

func formatDue(d *classroom.Date, t *classroom.TimeOfDay) string {
	if d == nil {
		return "-"
	}
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	if t != nil {
		s += fmt.Sprintf(" %02d:%02d", t.Hours, t.Minutes)
	}
	return s
}

func formatGrade(g *float64) string {
	if g == nil {
		return "-"
	}
	return strconv.FormatFloat(*g, 'f', -1, 64)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NewPostsCommand creates the posts command.
func NewPostsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Show the stream of a course",
		Long: `Show the announcements, course work and materials of a course,
newest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPosts(opts, cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&opts.CourseID, "course", "", "course id (required)")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

// PostView is the JSON form of one stream entry.
type PostView struct {
	Kind       classroom.Kind `json:"kind"`
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	UpdateTime string         `json:"updateTime,omitempty"`
}

func runPosts(opts *ListOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()
	s, err := e.Session(cmd.Context())
	if err != nil {
		return err
	}

	posts, err := s.CoursePosts(cmd.Context(), opts.CourseID, opts.Refresh)
	if err != nil {
		return e.fail("failed to load posts", err)
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView(p))
	}
	if e.out.Format == "json" {
		return e.out.Success(views)
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{string(v.Kind), v.ID, v.UpdateTime, v.Title})
	}
	return e.out.Table([]string{"KIND", "ID", "UPDATED", "TITLE"}, rows)
}

func postView(p session.Post) PostView {
	v := PostView{Kind: p.Kind, ID: p.ID, Title: p.Title}
	if !p.UpdateTime.IsZero() {
		v.UpdateTime = p.UpdateTime.UTC().Format(time.RFC3339)
	}
	return v
}
