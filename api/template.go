package api

// Attribute keys for the semantic attributes a scene object carries beyond
// its intrinsic visual state. The serialization bridge is configured with
// the subset of these to always include in export; see DefaultExportAttrs.
const (
	AttrRole        = "role"
	AttrDisplayName = "displayName"
	AttrValueKey    = "valueKey"
)

// DefaultExportAttrs is the standard always-include-in-export attribute
// list. It is plain configuration handed to the codec at construction, not
// process-global state, so tests can run with independent configurations.
func DefaultExportAttrs() []string {
	return []string{AttrRole, AttrDisplayName, AttrValueKey}
}

// TemplateFile is the persisted form of a document. It is the system's only
// durable format and must stay forward-readable by normalization as the
// role enumeration evolves: unknown roles load as static objects, missing
// semantic attributes are repaired on import.
type TemplateFile struct {
	Version int            `json:"version"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Objects []ObjectRecord `json:"objects"`
}

// FileVersion is the current TemplateFile.Version written by export.
const FileVersion = 2

// ObjectRecord is one scene object in a TemplateFile. Optional visual
// attributes are pointers so absence survives a round trip; the semantic
// triple uses omitempty strings because absence and empty are equivalent
// for it. A LegacyMeta bag is read on import and never written back.
type ObjectRecord struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Visible  *bool    `json:"visible,omitempty"`

	Fill        *string  `json:"fill,omitempty"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`

	Text       *string  `json:"text,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontFamily *string  `json:"fontFamily,omitempty"`

	Src *string `json:"src,omitempty"`

	Role        string `json:"role,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	ValueKey    string `json:"valueKey,omitempty"`
}

// LegacyMeta is the obsolete nested metadata bag found on objects written
// before the flat attribute schema existed:
//
//	{ "data": { "type": ..., "dynamicType": ..., "replaceable": ...,
//	            "colorProperty": ..., "textProperty": ... } }
//
// It is a one-time read source during normalization. Export only ever reads
// the flat attributes, so the bag can never leak back into persisted
// output.
type LegacyMeta struct {
	Type          string
	DynamicType   string
	Replaceable   bool
	ColorProperty string
	TextProperty  string
}
