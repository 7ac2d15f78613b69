// Package courseconfig holds per-user presentation settings for courses:
// display-name rewrites, course groups, the archive, and course colors.
//
// The configuration is a single JSON object stored in the cache under
// StoreKey.
package courseconfig

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/glassroom/internal/cache"
)

// StoreKey is the cache key of the configuration object.
const StoreKey = "courseConfigurations"

// ArchiveID is the id of the archive group.
const ArchiveID = "Archive"

// GroupType says which of the user's courses a group collects.
type GroupType string

const (
	GroupTeaching GroupType = "teaching"
	GroupEnrolled GroupType = "enrolled"
)

// NameReplacement rewrites course names matching MatchString, a
// case-insensitive regular expression. Replacement may use $1-style
// references.
type NameReplacement struct {
	ID          uuid.UUID `json:"id"`
	MatchString string    `json:"matchString"`
	Replacement string    `json:"replacement"`
}

// CourseGroup is a user-defined collection of course ids.
type CourseGroup struct {
	ID        string    `json:"id"`
	GroupName string    `json:"groupName"`
	GroupType GroupType `json:"groupType"`
	Courses   []string  `json:"courses"`
}

// IsArchive reports whether g is the archive group.
func (g CourseGroup) IsArchive() bool {
	return g.ID == ArchiveID
}

// Config is the stored course configuration.
type Config struct {
	ReplacedCourseNames []NameReplacement `json:"replacedCourseNames"`
	CourseGroups        []CourseGroup     `json:"courseGroups"`
	Archive             *CourseGroup      `json:"archive"`
	CustomColors        map[string]Color  `json:"customColors"`
}

// New returns an empty configuration.
func New() *Config {
	return &Config{
		ReplacedCourseNames: []NameReplacement{},
		CourseGroups:        []CourseGroup{},
		CustomColors:        map[string]Color{},
	}
}

// Load reads the configuration from store. A missing entry yields an empty
// configuration.
func Load(ctx context.Context, store cache.Store) (*Config, error) {
	cfg := New()
	if _, err := cache.ReadJSON(ctx, store, StoreKey, cfg); err != nil {
		return nil, fmt.Errorf("load course configuration: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to store.
func (c *Config) Save(ctx context.Context, store cache.Store) error {
	c.normalize()
	if err := cache.WriteJSON(ctx, store, StoreKey, c); err != nil {
		return fmt.Errorf("save course configuration: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.ReplacedCourseNames == nil {
		c.ReplacedCourseNames = []NameReplacement{}
	}
	if c.CourseGroups == nil {
		c.CourseGroups = []CourseGroup{}
	}
	if c.CustomColors == nil {
		c.CustomColors = map[string]Color{}
	}
}

// NameFor returns the display name of a course: the NFC-normalized name
// with every replacement applied in order, trimmed. Replacements whose
// pattern does not compile are skipped.
func (c *Config) NameFor(name string) string {
	out := norm.NFC.String(name)
	for _, r := range c.ReplacedCourseNames {
		re, err := regexp.Compile("(?i)" + r.MatchString)
		if err != nil {
			continue
		}
		out = re.ReplaceAllString(out, r.Replacement)
	}
	return strings.TrimSpace(out)
}

// AddReplacement appends a name replacement and returns it.
func (c *Config) AddReplacement(match, replacement string) (NameReplacement, error) {
	if _, err := regexp.Compile("(?i)" + match); err != nil {
		return NameReplacement{}, fmt.Errorf("invalid match pattern %q: %w", match, err)
	}
	r := NameReplacement{ID: uuid.New(), MatchString: match, Replacement: replacement}
	c.ReplacedCourseNames = append(c.ReplacedCourseNames, r)
	return r, nil
}

// RemoveReplacement deletes the replacement with id. Reports whether it
// existed.
func (c *Config) RemoveReplacement(id uuid.UUID) bool {
	before := len(c.ReplacedCourseNames)
	c.ReplacedCourseNames = slices.DeleteFunc(c.ReplacedCourseNames, func(r NameReplacement) bool {
		return r.ID == id
	})
	return len(c.ReplacedCourseNames) != before
}

// NewGroup creates a group with a fresh id and appends it.
func (c *Config) NewGroup(name string, groupType GroupType, courses ...string) CourseGroup {
	g := CourseGroup{
		ID:        uuid.NewString(),
		GroupName: name,
		GroupType: groupType,
		Courses:   append([]string{}, courses...),
	}
	c.CourseGroups = append(c.CourseGroups, g)
	return g
}

// SetGroups replaces every course group.
func (c *Config) SetGroups(groups []CourseGroup) {
	c.CourseGroups = append([]CourseGroup{}, groups...)
}

// Group returns the group with id, the archive included.
func (c *Config) Group(id string) (CourseGroup, bool) {
	if id == ArchiveID && c.Archive != nil {
		return *c.Archive, true
	}
	for _, g := range c.CourseGroups {
		if g.ID == id {
			return g, true
		}
	}
	return CourseGroup{}, false
}

// ArchiveCourse adds courseID to the archive group, creating the group on
// first use.
func (c *Config) ArchiveCourse(courseID string, groupType GroupType) {
	if c.Archive == nil {
		c.Archive = &CourseGroup{ID: ArchiveID, GroupName: ArchiveID, GroupType: groupType, Courses: []string{}}
	}
	if !slices.Contains(c.Archive.Courses, courseID) {
		c.Archive.Courses = append(c.Archive.Courses, courseID)
	}
}

// UnarchiveCourse removes courseID from the archive group.
func (c *Config) UnarchiveCourse(courseID string) {
	if c.Archive == nil {
		return
	}
	c.Archive.Courses = slices.DeleteFunc(c.Archive.Courses, func(id string) bool { return id == courseID })
}

// IsArchived reports whether courseID is in the archive group.
func (c *Config) IsArchived(courseID string) bool {
	return c.Archive != nil && slices.Contains(c.Archive.Courses, courseID)
}
