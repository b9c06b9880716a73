// Package generation defines the boundary between the service and external
// LLM providers. An Interpreter turns a computed numerology report into a
// short narrative reading; the Gemini adapter lives in platform/gemini.
package generation
