// Package tracking records where each trackable unit currently is.
//
// A Record points at one storage location and remembers one previous hop.
// It sits on top of the storage allocator: the record never changes location
// usage itself, the application layer pairs record changes with AddLoad and
// RemoveLoad on the locations involved.
package tracking
