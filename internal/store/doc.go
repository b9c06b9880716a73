// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the service layer, so that report computation never depends on whether
// or where reports are saved.
package store
