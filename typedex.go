// Package typedex builds a local retrieval index over a library's
// documentation corpus. It crawls documentation pages (or loads a pre-fetched
// markdown dump), splits the corpus into type-addressed chunks, enriches each
// chunk with a summary and an embedding vector, stores the result, and serves
// three retrieval operations: similarity search, type-name enumeration, and
// full type source reconstruction.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, rod/).
package typedex
