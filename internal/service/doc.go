// Package service contains the application use cases of the numerology API.
// It sits between the delivery mechanisms (HTTP handlers, CLI) and the pure
// engine in internal/domain/numerology, adding what the engine deliberately
// leaves out: a clock, batching, persistence of saved reports, narrative
// interpretation with caching, metrics and logging.
//
// Persistence and interpretation are optional. A service built without a
// report store answers ErrPersistenceDisabled from the report methods, and
// one built without an interpreter answers ErrInterpretationDisabled.
package service
