// Package manager holds the client-side state of resource lists.
//
// A Manager owns the in-memory list of one resource kind for one owner
// (all courses, the course work of course c1, the submissions of one course
// work item, ...). It loads from the cache, refreshes through a ListFunc,
// tracks the pagination cursor, and persists every committed list back to
// the cache.
//
// # State Machine
//
//	Idle --LoadList/RefreshList--> Loading --ok--> Loaded
//	                                       --err-> Failed (items kept)
//
// A refresh with an empty page token replaces the list; a refresh with a
// token appends the fetched page(s). Fetching all pages is one logical
// operation: one commit and one change event.
//
// # Concurrency
//
// State is guarded by a mutex. Refreshes are serialized per manager with a
// singleflight group: a refresh issued while another is in flight waits for
// and shares the first one's result. Close cancels the in-flight refresh.
//
// A Registry maps keys to managers, constructing them on first use and
// closing the least recently used ones beyond its capacity.
package manager
