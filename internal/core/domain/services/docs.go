// Package services contains domain services that work across aggregates or
// need collaborators: the fulfillment RuleEngine, its Thresholds and the
// CodeValidator it consults.
package services
