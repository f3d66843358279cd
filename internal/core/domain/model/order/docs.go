// Package order holds the Order aggregate of the forwarding core.
//
// The package includes:
//   - Order: the aggregate root owning boxes, line items, derived totals and rule flags
//   - Box, LineItem: entities owned by an order
//   - Status: the lifecycle graph with an explicit adjacency table
//   - ShippingMode: SEA or AIR
//   - Warning, RuleOutcome: what rule evaluation writes back onto an order
//
// Key business rules:
//   - Box volume is derived from dimensions; order totals are recomputed on every edit
//   - Boxes and items can only change while RECEIVED
//   - Illegal status transitions fail with a business rule violation and change nothing
//   - Rule outcomes are applied idempotently and never revert AIR to SEA
package order
