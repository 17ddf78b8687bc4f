package render

// RenderOptions carry per-request settings that do not belong in the schema.
type RenderOptions struct {
	// Section limits output to a single section id. Empty renders every
	// section in order.
	Section string
	// IDPrefix namespaces generated element ids so several forms can share a
	// page. Renderers generate a prefix when it is empty.
	IDPrefix string
	// Theme carries resolved design tokens; nil renders unthemed output.
	Theme *ThemeConfig
}
