// Package domain contains the entities the service persists around the
// numerology engine. The calculations themselves live in the numerology
// subpackage and stay free of storage and transport concerns.
package domain
