// Package template defines the template seam renderers depend on, keeping
// renderers independent from the engine that evaluates their markup.
package template
