// Package openapi derives form schemas from OpenAPI 3 request bodies.
//
// Each property of an operation's request body becomes a field. Vendor
// extensions steer the result:
//
//	x-formgen-section    "section" or "section/subsection" placement
//	x-formgen-order      integer sort key within the body
//	x-formgen-hint       decorator hint (falls back to description)
//	x-formgen-component  decorator component, a type name or {type, ...props}
//	x-formgen-labels     enum value -> option title
//
// Operation-level x-formgen-sections maps section ids to titles and
// x-formgen-icon sets the form icon.
package openapi
