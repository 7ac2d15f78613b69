package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glassroom/internal/classroom"
	"github.com/roach88/glassroom/internal/rest"
	"github.com/roach88/glassroom/internal/session"
)

// ItemOptions holds flags for commands addressing one resource.
type ItemOptions struct {
	*RootOptions
	CourseID     string
	CourseWorkID string
	ID           string
	Data         string
	Mask         []string
	Replace      bool
}

func addItemFlags(cmd *cobra.Command, opts *ItemOptions) {
	cmd.Flags().StringVar(&opts.CourseID, "course", "", "course id")
	cmd.Flags().StringVar(&opts.CourseWorkID, "course-work", "", "course work id (submissions)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "resource id (user id for students and teachers)")
}

func addDataFlag(cmd *cobra.Command, opts *ItemOptions) {
	cmd.Flags().StringVar(&opts.Data, "data", "", "JSON body, or @file to read it from a file")
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "get <kind>",
		Short: "Fetch one resource",
		Long: `Fetch one resource straight from the API.

Example:
  glassroom get courseWorks --course 123 --id 456
  glassroom get students --course 123 --id me`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItem(opts, args[0], rest.CapGet, cmd)
		},
	}
	addItemFlags(cmd, opts)
	return cmd
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "create <kind>",
		Short: "Create a post in a course",
		Long: `Create an announcement, course work item or material.

Example:
  glassroom create announcements --course 123 --data '{"text":"Hello"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItem(opts, args[0], rest.CapCreate, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.CourseID, "course", "", "course id")
	addDataFlag(cmd, opts)
	return cmd
}

// NewPatchCommand creates the patch command.
func NewPatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "patch <kind>",
		Short: "Update fields of one resource",
		Long: `Update the fields named by --mask from --data.

Courses can also be replaced whole with --replace.

Example:
  glassroom patch courseWorks --course 123 --id 456 --mask title --data '{"title":"Essay 2"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capability := rest.CapPatch
			if opts.Replace {
				capability = rest.CapUpdate
			}
			return runItem(opts, args[0], capability, cmd)
		},
	}
	addItemFlags(cmd, opts)
	addDataFlag(cmd, opts)
	cmd.Flags().StringSliceVar(&opts.Mask, "mask", nil, "fields to update (comma separated)")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "replace the whole resource (courses only)")
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "delete <kind>",
		Short: "Delete a post from a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItem(opts, args[0], rest.CapDelete, cmd)
		},
	}
	addItemFlags(cmd, opts)
	return cmd
}

// DeleteResult is the payload of a successful delete.
type DeleteResult struct {
	Kind    classroom.Kind `json:"kind"`
	ID      string         `json:"id"`
	Deleted bool           `json:"deleted"`
}

func runItem(opts *ItemOptions, kindName string, capability rest.Capability, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)
	kind, err := classroom.ParseKind(kindName)
	if err != nil {
		return usageError(out, err.Error())
	}
	if !slices.Contains(classroom.Capabilities(kind), capability) {
		return usageError(out, fmt.Sprintf("%s does not support %s", kind, capability))
	}
	if err := requireOwner(out, kind, opts.CourseID, opts.CourseWorkID); err != nil {
		return err
	}
	if capability != rest.CapCreate && opts.ID == "" {
		return usageError(out, "--id is required")
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

	result, err := callItem(cmd.Context(), s.Service(), kind, capability, opts)
	if err != nil {
		var derr *dataError
		if errors.As(err, &derr) {
			return outputError(e.out, ErrCodeUsage, ExitCommandError, "invalid --data", err)
		}
		return e.fail(fmt.Sprintf("%s %s failed", capability, kind), err)
	}

	if capability != rest.CapGet {
		invalidate(cmd.Context(), e, s, kind, ownerIDs(kind, opts.CourseID, opts.CourseWorkID)...)
	}
	return printItem(e.out, result)
}

// invalidate empties the cached list a mutation made stale.
func invalidate(ctx context.Context, e *env, s *session.Session, kind classroom.Kind, ids ...string) {
	if err := s.ClearCache(ctx, kind, ids...); err != nil {
		e.logger.Warn("cache invalidation failed", "kind", kind, "error", err)
	}
}

func callItem(ctx context.Context, svc *classroom.Service, kind classroom.Kind, capability rest.Capability, o *ItemOptions) (any, error) {
	item := classroom.CourseItemParams{CourseID: o.CourseID, ID: o.ID}
	mask := classroom.UpdateMaskQuery{UpdateMask: o.Mask}
	none := rest.Empty{}

	switch kind {
	case classroom.KindCourses:
		p := classroom.CourseParams{ID: o.ID}
		switch capability {
		case rest.CapGet:
			return svc.Courses.Get(ctx, p, none, none)
		case rest.CapPatch:
			return withData(o.Data, func(b classroom.Course) (classroom.Course, error) {
				return svc.Courses.Patch(ctx, p, mask, b)
			})
		case rest.CapUpdate:
			return withData(o.Data, func(b classroom.Course) (classroom.Course, error) {
				return svc.Courses.Update(ctx, p, none, b)
			})
		}
	case classroom.KindAnnouncements:
		r := svc.Announcements
		switch capability {
		case rest.CapGet:
			return r.Get(ctx, item, none, none)
		case rest.CapCreate:
			return withData(o.Data, func(b classroom.Announcement) (classroom.Announcement, error) {
				return r.Create(ctx, classroom.CourseIDParams{CourseID: o.CourseID}, none, b)
			})
		case rest.CapPatch:
			return withData(o.Data, func(b classroom.Announcement) (classroom.Announcement, error) {
				return r.Patch(ctx, item, mask, b)
			})
		case rest.CapDelete:
			return deleted(kind, o.ID)(r.Delete(ctx, item, none, none))
		}
	case classroom.KindCourseWorks:
		r := svc.CourseWork
		switch capability {
		case rest.CapGet:
			return r.Get(ctx, item, none, none)
		case rest.CapCreate:
			return withData(o.Data, func(b classroom.CourseWork) (classroom.CourseWork, error) {
				return r.Create(ctx, classroom.CourseIDParams{CourseID: o.CourseID}, none, b)
			})
		case rest.CapPatch:
			return withData(o.Data, func(b classroom.CourseWork) (classroom.CourseWork, error) {
				return r.Patch(ctx, item, mask, b)
			})
		case rest.CapDelete:
			return deleted(kind, o.ID)(r.Delete(ctx, item, none, none))
		}
	case classroom.KindMaterials:
		r := svc.Materials
		switch capability {
		case rest.CapGet:
			return r.Get(ctx, item, none, none)
		case rest.CapCreate:
			return withData(o.Data, func(b classroom.CourseWorkMaterial) (classroom.CourseWorkMaterial, error) {
				return r.Create(ctx, classroom.CourseIDParams{CourseID: o.CourseID}, none, b)
			})
		case rest.CapPatch:
			return withData(o.Data, func(b classroom.CourseWorkMaterial) (classroom.CourseWorkMaterial, error) {
				return r.Patch(ctx, item, mask, b)
			})
		case rest.CapDelete:
			return deleted(kind, o.ID)(r.Delete(ctx, item, none, none))
		}
	case classroom.KindSubmissions:
		p := classroom.SubmissionParams{CourseID: o.CourseID, CourseWorkID: o.CourseWorkID, ID: o.ID}
		switch capability {
		case rest.CapGet:
			return svc.Submissions.Get(ctx, p, none, none)
		case rest.CapPatch:
			return withData(o.Data, func(b classroom.StudentSubmission) (classroom.StudentSubmission, error) {
				return svc.Submissions.Patch(ctx, p, mask, b)
			})
		}
	case classroom.KindStudents:
		return svc.Students.Get(ctx, classroom.RosterParams{CourseID: o.CourseID, UserID: o.ID}, none, none)
	case classroom.KindTeachers:
		return svc.Teachers.Get(ctx, classroom.RosterParams{CourseID: o.CourseID, UserID: o.ID}, none, none)
	}
	return nil, fmt.Errorf("%s does not support %s", kind, capability)
}

func deleted(kind classroom.Kind, id string) func(rest.Empty, error) (any, error) {
	return func(_ rest.Empty, err error) (any, error) {
		if err != nil {
			return nil, err
		}
		return DeleteResult{Kind: kind, ID: id, Deleted: true}, nil
	}
}

// dataError marks a --data value that could not be decoded.
type dataError struct {
	err error
}

func (e *dataError) Error() string { return e.err.Error() }
func (e *dataError) Unwrap() error { return e.err }

// withData decodes raw into B and passes it to call.
func withData[B, R any](raw string, call func(B) (R, error)) (any, error) {
	body, err := decodeData[B](raw)
	if err != nil {
		return nil, &dataError{err: err}
	}
	return call(body)
}

// decodeData parses a --data value: inline JSON, or @path to read a file.
// Unknown fields are rejected.
func decodeData[B any](raw string) (B, error) {
	var body B
	if raw == "" {
		return body, fmt.Errorf("--data is required")
	}
	data := []byte(raw)
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return body, err
		}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return body, fmt.Errorf("decode --data: %w", err)
	}
	return body, nil
}

// printItem writes one resource: the JSON envelope, or indented JSON in
// text mode.
func printItem(f *OutputFormatter, v any) error {
	if f.Format == "json" {
		return f.Success(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.Writer, string(data))
	return err
}

// AssigneesOptions holds flags for the assignees command.
type AssigneesOptions struct {
	ItemOptions
	Mode   string
	Add    []string
	Remove []string
}

// NewAssigneesCommand creates the assignees command.
func NewAssigneesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AssigneesOptions{ItemOptions: ItemOptions{RootOptions: rootOpts}}
	cmd := &cobra.Command{
		Use:   "assignees",
		Short: "Change who an announcement is assigned to",
		Long: `Change who an announcement is assigned to.

Example:
  glassroom assignees --course 123 --id 789 --mode INDIVIDUAL_STUDENTS --add s1,s2
  glassroom assignees --course 123 --id 789 --mode ALL_STUDENTS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssignees(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.CourseID, "course", "", "course id (required)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "announcement id (required)")
	cmd.Flags().StringVar(&opts.Mode, "mode", string(classroom.AllStudents), "ALL_STUDENTS or INDIVIDUAL_STUDENTS")
	cmd.Flags().StringSliceVar(&opts.Add, "add", nil, "student ids to add")
	cmd.Flags().StringSliceVar(&opts.Remove, "remove", nil, "student ids to remove")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func runAssignees(opts *AssigneesOptions, cmd *cobra.Command) error {
	req := classroom.ModifyAssigneesRequest{AssigneeMode: classroom.AssigneeMode(opts.Mode)}
	if len(opts.Add) > 0 || len(opts.Remove) > 0 {
		req.ModifyIndividualStudentsOptions = &classroom.ModifyIndividualStudentsOptions{
			AddStudentIDs:    opts.Add,
			RemoveStudentIDs: opts.Remove,
		}
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

	params := classroom.CourseItemParams{CourseID: opts.CourseID, ID: opts.ID}
	a, err := s.Service().Announcements.ModifyAssignees(cmd.Context(), params, rest.Empty{}, req)
	if err != nil {
		return e.fail("modify assignees failed", err)
	}
	invalidate(cmd.Context(), e, s, classroom.KindAnnouncements, opts.CourseID)
	return printItem(e.out, a)
}
