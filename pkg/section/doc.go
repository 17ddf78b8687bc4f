// Package section decides how a form section is presented. A section with
// more than one subsection is handed to a TabbedRenderer with every
// subsection in declaration order; a section with exactly one subsection is
// handed to a SubsectionRenderer. Sections are validated before either
// collaborator runs, so an invalid section never yields partial output.
//
// Dispatch is a pure decision over immutable input: a Dispatcher holds no
// mutable state and may be shared across goroutines.
package section
