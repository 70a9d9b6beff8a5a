// Package services contains the core application services: the
// incremental ingester and the search service. Services depend only on
// domain types and ports, never on concrete adapters.
package services
