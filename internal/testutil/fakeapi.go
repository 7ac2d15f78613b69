package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roach88/glassroom/internal/classroom"
	"github.com/roach88/glassroom/internal/rest"
)

// Route patterns, as registered with echo. Used to address failure
// injection and request counts.
const (
	RouteCourses       = "/courses"
	RouteCourse        = "/courses/:courseId"
	RouteAnnouncements = "/courses/:courseId/announcements"
	RouteAnnouncement  = "/courses/:courseId/announcements/:id"
	RouteCourseWorks   = "/courses/:courseId/courseWork"
	RouteCourseWork    = "/courses/:courseId/courseWork/:id"
	RouteMaterials     = "/courses/:courseId/courseWorkMaterials"
	RouteMaterial      = "/courses/:courseId/courseWorkMaterials/:id"
	RouteSubmissions   = "/courses/:courseId/courseWork/:id/studentSubmissions"
	RouteSubmission    = "/courses/:courseId/courseWork/:id/studentSubmissions/:subId"
	RouteStudents      = "/courses/:courseId/students"
	RouteStudent       = "/courses/:courseId/students/:userId"
	RouteTeachers      = "/courses/:courseId/teachers"
	RouteTeacher       = "/courses/:courseId/teachers/:userId"
)

const (
	modifyAssigneesSuffix = ":modifyAssignees"
	defaultFakePageSize   = 2
	generatedIDPrefix     = "gen-"
	collectionSeparator   = "/"
)

// collection describes one list endpoint of the fake.
type collection struct {
	name     string // path segment
	envelope string // JSON key of the list response
	idField  string
}

var (
	coursesCol       = collection{"courses", "courses", "id"}
	announcementsCol = collection{"announcements", "announcements", "id"}
	courseWorkCol    = collection{"courseWork", "courseWork", "id"}
	materialsCol     = collection{"courseWorkMaterials", "courseWorkMaterial", "id"}
	submissionsCol   = collection{"studentSubmissions", "studentSubmissions", "id"}
	studentsCol      = collection{"students", "students", "userId"}
	teachersCol      = collection{"teachers", "teachers", "userId"}
)

// FakeAPI is an in-memory classroom API served over HTTP.
//
// Lists are paginated (two items per page unless the request sets
// pageSize). Failures can be scripted per route, requests are counted, and
// a gate can hold requests until released.
//
// Thread-safety: All methods are safe for concurrent use.
type FakeAPI struct {
	srv   *httptest.Server
	echo  *echo.Echo
	clock *Clock

	mu          sync.Mutex
	pageSize    int
	linkPaging  bool
	items       map[string][]map[string]any
	failures    map[string][]int
	counts      map[string]int
	queries     map[string]url.Values
	gate        chan struct{}
	arrived     chan struct{}
	nextID      int
	authHeaders []string
}

// NewFakeAPI starts a fake server; it is shut down when t ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		echo:     echo.New(),
		clock:    NewClock(),
		pageSize: defaultFakePageSize,
		items:    make(map[string][]map[string]any),
		failures: make(map[string][]int),
		counts:   make(map[string]int),
		queries:  make(map[string]url.Values),
		arrived:  make(chan struct{}, 64),
	}
	f.echo.HideBanner = true
	f.echo.Use(f.intercept)
	f.routes()

	f.srv = httptest.NewServer(f.echo)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *FakeAPI) routes() {
	f.echo.GET(RouteCourses, f.list(courseKey, coursesCol))
	f.echo.GET(RouteCourse, f.get(courseKey, coursesCol, "courseId"))
	f.echo.PATCH(RouteCourse, f.patch(courseKey, coursesCol, "courseId"))
	f.echo.PUT(RouteCourse, f.update(courseKey, coursesCol, "courseId"))

	course := f.echo.Group(RouteCourse)
	for _, col := range []collection{announcementsCol, courseWorkCol, materialsCol} {
		key := childKey(col)
		course.GET("/"+col.name, f.list(key, col))
		course.POST("/"+col.name, f.create(key, col))
		course.GET("/"+col.name+"/:id", f.get(key, col, "id"))
		course.PATCH("/"+col.name+"/:id", f.patch(key, col, "id"))
		course.DELETE("/"+col.name+"/:id", f.delete(key, col))
	}
	// ":modifyAssignees" is part of the id segment as far as routing goes.
	course.POST("/announcements/:id", f.modifyAssignees(childKey(announcementsCol)))

	course.GET("/courseWork/:id/studentSubmissions", f.list(submissionKey, submissionsCol))
	course.GET("/courseWork/:id/studentSubmissions/:subId", f.get(submissionKey, submissionsCol, "subId"))
	course.PATCH("/courseWork/:id/studentSubmissions/:subId", f.patch(submissionKey, submissionsCol, "subId"))

	for _, col := range []collection{studentsCol, teachersCol} {
		key := childKey(col)
		course.GET("/"+col.name, f.list(key, col))
		course.GET("/"+col.name+"/:userId", f.get(key, col, "userId"))
	}
}

// URL returns the base URL to point a rest.Client at.
func (f *FakeAPI) URL() string {
	return f.srv.URL
}

// Client returns a rest.Client for the fake with retries disabled unless
// opts say otherwise.
func (f *FakeAPI) Client(opts ...rest.ClientOption) *rest.Client {
	all := append([]rest.ClientOption{rest.WithBaseURL(f.URL()), rest.WithRetries(0)}, opts...)
	return rest.NewClient(all...)
}

// Service returns a classroom.Service for the fake.
func (f *FakeAPI) Service(opts ...rest.ClientOption) *classroom.Service {
	return classroom.NewService(f.Client(opts...))
}

// SetPageSize sets the default page size of list responses.
func (f *FakeAPI) SetPageSize(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageSize = n
}

// UseLinkPagination makes lists advertise the next page only through a
// rel="next" Link header instead of nextPageToken.
func (f *FakeAPI) UseLinkPagination(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkPaging = on
}

// Fail makes the next n requests matching method and route fail with
// status.
func (f *FakeAPI) Fail(method, route string, status, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := method + " " + route
	for i := 0; i < n; i++ {
		f.failures[k] = append(f.failures[k], status)
	}
}

// Count returns how many requests matched method and route.
func (f *FakeAPI) Count(method, route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[method+" "+route]
}

// LastQuery returns the query of the latest request matching method and
// route.
func (f *FakeAPI) LastQuery(method, route string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[method+" "+route]
}

// AuthHeaders returns the Authorization headers seen so far.
func (f *FakeAPI) AuthHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.authHeaders...)
}

// Hold blocks every subsequent request until the returned func is called.
// Arrived receives one value per held request.
func (f *FakeAPI) Hold() (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gate = gate

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.gate = nil
			f.mu.Unlock()
			close(gate)
		})
	}
}

// Arrived signals each request that reached a Hold gate.
func (f *FakeAPI) Arrived() <-chan struct{} {
	return f.arrived
}

// AddCourses seeds courses.
func (f *FakeAPI) AddCourses(courses ...classroom.Course) {
	seed(f, coursesCol.name, courses)
}

// AddAnnouncements seeds announcements of courseID.
func (f *FakeAPI) AddAnnouncements(courseID string, items ...classroom.Announcement) {
	seed(f, courseID+collectionSeparator+announcementsCol.name, items)
}

// AddCourseWork seeds course work of courseID.
func (f *FakeAPI) AddCourseWork(courseID string, items ...classroom.CourseWork) {
	seed(f, courseID+collectionSeparator+courseWorkCol.name, items)
}

// AddMaterials seeds course work materials of courseID.
func (f *FakeAPI) AddMaterials(courseID string, items ...classroom.CourseWorkMaterial) {
	seed(f, courseID+collectionSeparator+materialsCol.name, items)
}

// AddSubmissions seeds submissions of one course work item.
func (f *FakeAPI) AddSubmissions(courseID, courseWorkID string, items ...classroom.StudentSubmission) {
	seed(f, courseID+collectionSeparator+courseWorkID+collectionSeparator+submissionsCol.name, items)
}

// AddStudents seeds the student roster of courseID.
func (f *FakeAPI) AddStudents(courseID string, items ...classroom.Student) {
	seed(f, courseID+collectionSeparator+studentsCol.name, items)
}

// AddTeachers seeds the teacher roster of courseID.
func (f *FakeAPI) AddTeachers(courseID string, items ...classroom.Teacher) {
	seed(f, courseID+collectionSeparator+teachersCol.name, items)
}

// seed stores items through their JSON form so the fake serves exactly what
// the client would send.
func seed[T any](f *FakeAPI, key string, items []T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		f.items[key] = append(f.items[key], toMap(item))
	}
}

func toMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal seed item: %v", err))
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("testutil: unmarshal seed item: %v", err))
	}
	return m
}

// Middleware

func (f *FakeAPI) intercept(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		k := c.Request().Method + " " + c.Path()

		f.mu.Lock()
		f.counts[k]++
		f.queries[k] = c.QueryParams()
		if h := c.Request().Header.Get("Authorization"); h != "" {
			f.authHeaders = append(f.authHeaders, h)
		}
		gate := f.gate
		var status int
		if queue := f.failures[k]; len(queue) > 0 {
			status, f.failures[k] = queue[0], queue[1:]
		}
		f.mu.Unlock()

		if gate != nil {
			f.arrived <- struct{}{}
			select {
			case <-gate:
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}
		if status != 0 {
			return apiError(c, status, "injected failure")
		}
		return next(c)
	}
}

// Keys

func courseKey(echo.Context) string { return coursesCol.name }

func childKey(col collection) func(echo.Context) string {
	return func(c echo.Context) string {
		return c.Param("courseId") + collectionSeparator + col.name
	}
}

func submissionKey(c echo.Context) string {
	return c.Param("courseId") + collectionSeparator + c.Param("id") + collectionSeparator + submissionsCol.name
}

// Handlers

func (f *FakeAPI) list(key func(echo.Context) string, col collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		f.mu.Lock()
		all := f.items[key(c)]
		size := f.pageSize
		linkPaging := f.linkPaging
		f.mu.Unlock()

		if raw := c.QueryParam("pageSize"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return apiError(c, http.StatusBadRequest, "invalid pageSize")
			}
			if n > 0 {
				size = n
			}
		}

		start := 0
		if token := c.QueryParam("pageToken"); token != "" {
			n, err := strconv.Atoi(strings.TrimPrefix(token, "p"))
			if err != nil || n < 0 || n > len(all) {
				return apiError(c, http.StatusBadRequest, "invalid pageToken")
			}
			start = n
		}
		end := start + size
		if end > len(all) {
			end = len(all)
		}

		body := map[string]any{col.envelope: cloneItems(all[start:end])}
		if end < len(all) {
			next := "p" + strconv.Itoa(end)
			if linkPaging {
				u := *c.Request().URL
				q := u.Query()
				q.Set("pageToken", next)
				u.RawQuery = q.Encode()
				c.Response().Header().Set("Link", fmt.Sprintf(`<%s%s>; rel="next"`, f.srv.URL, u.String()))
			} else {
				body["nextPageToken"] = next
			}
		}
		return c.JSON(http.StatusOK, body)
	}
}

func (f *FakeAPI) get(key func(echo.Context) string, col collection, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		_, item := find(f.items[key(c)], col.idField, c.Param(param))
		if item == nil {
			return apiError(c, http.StatusNotFound, "not found")
		}
		return c.JSON(http.StatusOK, item)
	}
}

func (f *FakeAPI) create(key func(echo.Context) string, col collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		item := map[string]any{}
		if err := json.NewDecoder(c.Request().Body).Decode(&item); err != nil {
			return apiError(c, http.StatusBadRequest, "invalid body")
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		f.nextID++
		now := Stamp(f.clock.Next())
		item[col.idField] = generatedIDPrefix + strconv.Itoa(f.nextID)
		item["courseId"] = c.Param("courseId")
		item["creationTime"] = now
		item["updateTime"] = now
		k := key(c)
		f.items[k] = append(f.items[k], item)
		return c.JSON(http.StatusOK, item)
	}
}

func (f *FakeAPI) patch(key func(echo.Context) string, col collection, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		mask := c.QueryParam("updateMask")
		if mask == "" {
			return apiError(c, http.StatusBadRequest, "updateMask is required")
		}
		body := map[string]any{}
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return apiError(c, http.StatusBadRequest, "invalid body")
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		_, item := find(f.items[key(c)], col.idField, c.Param(param))
		if item == nil {
			return apiError(c, http.StatusNotFound, "not found")
		}
		for _, field := range strings.Split(mask, ",") {
			if v, ok := body[field]; ok {
				item[field] = v
			} else {
				delete(item, field)
			}
		}
		item["updateTime"] = Stamp(f.clock.Next())
		return c.JSON(http.StatusOK, item)
	}
}

func (f *FakeAPI) update(key func(echo.Context) string, col collection, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := map[string]any{}
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return apiError(c, http.StatusBadRequest, "invalid body")
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		items := f.items[key(c)]
		i, item := find(items, col.idField, c.Param(param))
		if item == nil {
			return apiError(c, http.StatusNotFound, "not found")
		}
		body[col.idField] = item[col.idField]
		body["updateTime"] = Stamp(f.clock.Next())
		items[i] = body
		return c.JSON(http.StatusOK, body)
	}
}

func (f *FakeAPI) delete(key func(echo.Context) string, col collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		k := key(c)
		i, item := find(f.items[k], col.idField, c.Param("id"))
		if item == nil {
			return apiError(c, http.StatusNotFound, "not found")
		}
		f.items[k] = append(f.items[k][:i], f.items[k][i+1:]...)
		return c.JSON(http.StatusOK, map[string]any{})
	}
}

func (f *FakeAPI) modifyAssignees(key func(echo.Context) string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, action, ok := strings.Cut(c.Param("id"), ":")
		if !ok || ":"+action != modifyAssigneesSuffix {
			return apiError(c, http.StatusNotFound, "unknown method")
		}

		var req classroom.ModifyAssigneesRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apiError(c, http.StatusBadRequest, "invalid body")
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		_, item := find(f.items[key(c)], "id", id)
		if item == nil {
			return apiError(c, http.StatusNotFound, "not found")
		}

		item["assigneeMode"] = string(req.AssigneeMode)
		if req.AssigneeMode == classroom.AllStudents {
			delete(item, "individualStudentsOptions")
		} else if opts := req.ModifyIndividualStudentsOptions; opts != nil {
			current := studentIDs(item)
			for _, s := range opts.AddStudentIDs {
				if !contains(current, s) {
					current = append(current, s)
				}
			}
			kept := []any{}
			for _, s := range current {
				if !contains(opts.RemoveStudentIDs, s) {
					kept = append(kept, s)
				}
			}
			item["individualStudentsOptions"] = map[string]any{"studentIds": kept}
		}
		item["updateTime"] = Stamp(f.clock.Next())
		return c.JSON(http.StatusOK, item)
	}
}

// Helpers

func apiError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
			"status":  strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_")),
		},
	})
}

func find(items []map[string]any, field, id string) (int, map[string]any) {
	for i, item := range items {
		if v, _ := item[field].(string); v == id {
			return i, item
		}
	}
	return -1, nil
}

func cloneItems(items []map[string]any) []map[string]any {
	out := make([]map[string]any, len(items))
	copy(out, items)
	return out
}

func studentIDs(item map[string]any) []string {
	opts, _ := item["individualStudentsOptions"].(map[string]any)
	raw, _ := opts["studentIds"].([]any)
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
