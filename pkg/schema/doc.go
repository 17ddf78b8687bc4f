// Package schema defines the declarative form description consumed by the
// section dispatcher and renderers: a form owns ordered sections, sections own
// ordered subsections, subsections own ordered fields, and an optional
// decorators map keyed by field id carries presentation overrides (hint text,
// alternate component types) without changing a field's semantic type.
//
// Forms are authored as JSON or YAML, loaded wholesale before rendering, and
// treated as immutable afterwards. Validate reports every violated invariant
// with a diagnostic path instead of stopping at the first problem, so callers
// can surface the complete list before anything is rendered.
package schema
