// Package gemini provides an implementation of the generation.Interpreter
// interface that asks Google's Gemini API for a narrative reading of a
// numerology report.
//
// This package is an infrastructure adapter: it renders the report into a
// prompt (an embedded text/template, optionally replaced from a file), calls
// the model through google.golang.org/genai and maps failures onto the
// generation package's errors.
//
// Transient failures are retried with exponential backoff and jitter; safety
// blocks and empty responses are returned immediately.
package gemini
