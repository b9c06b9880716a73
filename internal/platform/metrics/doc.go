// Package metrics exposes the Prometheus collectors of the numerology API:
// counters for computed reports, compatibility scores and calculation
// failures, and a request duration histogram fed by HTTP middleware.
package metrics
