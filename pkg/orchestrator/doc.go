// Package orchestrator resolves a form (catalog id, inline value or OpenAPI
// operation), applies transformers, validates it, resolves the theme and
// hands it to a registered renderer.
package orchestrator
