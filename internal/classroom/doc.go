// Package classroom declares the resources of the classroom API on top of
// package rest.
//
// Every resource (Courses, Announcements, CourseWorks, Materials,
// Submissions, Students, Teachers) is a thin struct whose methods delegate
// to package-level rest.Endpoint values. The capabilities a resource
// supports are asserted at compile time against the generic interfaces of
// package rest; Endpoints exposes the same declarations for runtime checks
// and for the CLI.
package classroom
