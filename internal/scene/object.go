// Package scene implements the live document: an ordered scene graph of
// drawable objects (rectangle, text, image) with add/remove/insert-at-index
// primitives, selection, and a render-request hook. The z-order is the
// collection order; later objects draw on top.
package scene

import (
	"github.com/google/uuid"

	"github.com/teamcrest/crest/api"
)

// Kind identifies the primitive type of a scene object.
type Kind string

const (
	KindRect  Kind = "rect"
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Object is the universal drawable primitive. Intrinsic visual attributes
// plus the three flat semantic attributes (Role, DisplayName, ValueKey)
// this system layers on top.
//
// For images, Width/Height are the intrinsic pixel dimensions and
// ScaleX/ScaleY scale them; the rendered size is the product. Replacing an
// image must preserve the rendered size, not the raw scale.
type Object struct {
	ID       string
	Kind     Kind
	X, Y     float64
	Width    float64
	Height   float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Opacity  float64

	// Visible is a pointer so "never set" is distinguishable from an
	// explicit false. Normalization defaults nil to visible.
	Visible *bool

	Fill        string
	Stroke      string
	StrokeWidth float64

	Text       string
	FontSize   float64
	FontFamily string

	Src string // image source path, image objects only

	Role        api.Role
	DisplayName string
	ValueKey    string

	// Legacy holds the obsolete nested metadata bag if one was present in
	// the persisted blob. Read once by normalization, never exported.
	Legacy *api.LegacyMeta
}

// NewObject returns an Object of the given kind with a fresh ID and
// identity scale.
func NewObject(kind Kind) *Object {
	return &Object{
		ID:      uuid.NewString(),
		Kind:    kind,
		ScaleX:  1,
		ScaleY:  1,
		Opacity: 1,
	}
}

// IsVisible reports the effective visibility (unset counts as visible).
func (o *Object) IsVisible() bool { return o.Visible == nil || *o.Visible }

// SetVisible sets an explicit visibility.
func (o *Object) SetVisible(v bool) { o.Visible = &v }

// RenderedWidth returns the on-canvas width after scaling.
func (o *Object) RenderedWidth() float64 { return o.Width * o.ScaleX }

// RenderedHeight returns the on-canvas height after scaling.
func (o *Object) RenderedHeight() float64 { return o.Height * o.ScaleY }

// Clone returns a deep copy of the object (Legacy and Visible included).
func (o *Object) Clone() *Object {
	c := *o
	if o.Visible != nil {
		v := *o.Visible
		c.Visible = &v
	}
	if o.Legacy != nil {
		l := *o.Legacy
		c.Legacy = &l
	}
	return &c
}
