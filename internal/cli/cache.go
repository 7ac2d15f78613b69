package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/glassroom/internal/cache"
	"github.com/roach88/glassroom/internal/classroom"
)

// CacheResult is the payload of cache clear.
type CacheResult struct {
	Key     string `json:"key"`
	Cleared bool   `json:"cleared"`
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local cache",
	}
	cmd.AddCommand(newCacheClearCommand(rootOpts))
	return cmd
}

func newCacheClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "clear <kind>",
		Short: "Empty the cached list of one kind",
		Long: `Empty the cached list of one kind. The next list fetches from the API.

Example:
  glassroom cache clear courses
  glassroom cache clear submissions --course 123 --course-work 456`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.CourseID, "course", "", "course id")
	cmd.Flags().StringVar(&opts.CourseWorkID, "course-work", "", "course work id (submissions)")
	return cmd
}

func runCacheClear(opts *ListOptions, kindName string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)
	kind, err := classroom.ParseKind(kindName)
	if err != nil {
		return usageError(out, err.Error())
	}
	if err := requireOwner(out, kind, opts.CourseID, opts.CourseWorkID); err != nil {
		return err
	}

	ids := ownerIDs(kind, opts.CourseID, opts.CourseWorkID)

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()
	s, err := e.Session(cmd.Context())
	if err != nil {
		return err
	}
	if err := s.ClearCache(cmd.Context(), kind, ids...); err != nil {
		return e.fail(fmt.Sprintf("failed to clear %s cache", kind), err)
	}

	result := CacheResult{Key: cache.Key(string(kind), ids...), Cleared: true}
	if e.out.Format == "json" {
		return e.out.Success(result)
	}
	return e.out.Success(fmt.Sprintf("cleared %s", result.Key))
}
