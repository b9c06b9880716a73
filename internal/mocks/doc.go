// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes function fields (XFn) that override its behaviour and
// records the arguments of every call so tests can assert on them:
//
//	interp := &mocks.MockInterpreter{
//	    InterpretFn: func(ctx context.Context, r *numerology.Report) (string, error) {
//	        return "a reading", nil
//	    },
//	}
//
// MockReportStore additionally falls back to an in-memory map when no
// function field is set, which is enough for most service tests.
package mocks
