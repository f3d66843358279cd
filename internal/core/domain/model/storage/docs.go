// Package storage implements the warehouse storage capacity allocator.
//
// A Location is a node in a tree of warehouses, zones, aisles, racks,
// shelves and bins linked by parent id. Each node tracks its own weight,
// volume and item count against optional bounds and moves between
// AVAILABLE, OCCUPIED and RESERVED as goods and reservations come and go.
// MAINTENANCE, BLOCKED and RETIRED take a node out of service.
//
// Ancestors and Path walk parent ids through a lookup function instead of an
// object graph. AggregateUtilization sums leaf nodes.
package storage
