// Package codec is the serialization bridge between live documents and the
// persisted template blob. Export always includes the configured semantic
// attributes and never emits a legacy metadata bag; import decodes the
// blob and runs normalization over every object before the document is
// handed to the caller, so role queries are valid the moment Import
// returns.
package codec

import (
	"context"
	"errors"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/normalize"
	"github.com/teamcrest/crest/internal/scene"
)

// ErrMalformedBlob indicates the persisted blob could not be decoded.
// Fatal for that import call only; the editor session survives.
var ErrMalformedBlob = errors.New("malformed template blob")

// encodeFunc marshals a value to JSON. Injectable so tests can exercise
// the export fallback path.
type encodeFunc func(any) ([]byte, error)

// Codec carries the export-attribute configuration. Which semantic
// attributes are always included in export is per-instance configuration
// set at construction, not process-global state.
type Codec struct {
	attrs  map[string]bool
	log    *zap.Logger
	norm   *normalize.Normalizer
	encode encodeFunc
}

// New returns a Codec that always exports the given semantic attribute
// keys (see api.DefaultExportAttrs). A nil logger disables logging.
func New(attrs []string, log *zap.Logger) *Codec {
	if log == nil {
		log = zap.NewNop()
	}
	set := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		set[a] = true
	}
	return &Codec{
		attrs:  set,
		log:    log,
		norm:   normalize.New(log),
		encode: func(v any) ([]byte, error) { return oj.Marshal(v) },
	}
}

// Export produces the persisted form of doc. It does not fail: an encoding
// error degrades to a minimal export (intrinsic attributes plus best-effort
// roles), and if even that fails an empty document is returned, so a
// corrupt in-memory state never blocks saving entirely.
func (c *Codec) Export(doc *scene.Document) []byte {
	file := api.TemplateFile{
		Version: api.FileVersion,
		Width:   doc.Width,
		Height:  doc.Height,
	}
	for _, o := range doc.Objects() {
		file.Objects = append(file.Objects, c.record(o))
	}
	blob, err := c.encode(file)
	if err == nil {
		return blob
	}
	c.log.Warn("export failed, falling back to minimal export", zap.Error(err))

	minimal := api.TemplateFile{Version: api.FileVersion, Width: doc.Width, Height: doc.Height}
	for _, o := range doc.Objects() {
		r := intrinsicRecord(o)
		r.Role = string(o.Role)
		minimal.Objects = append(minimal.Objects, r)
	}
	if blob, err = c.encode(minimal); err == nil {
		return blob
	}
	c.log.Error("minimal export failed, saving empty document", zap.Error(err))
	return []byte(`{"version":` + fmt.Sprint(api.FileVersion) + `,"width":0,"height":0,"objects":[]}`)
}

// record builds the full persisted record for o. The legacy bag is never
// read here, which is what guarantees it cannot leak into output.
func (c *Codec) record(o *scene.Object) api.ObjectRecord {
	r := intrinsicRecord(o)
	if c.attrs[api.AttrRole] && o.Role != "" {
		r.Role = string(o.Role)
	}
	if c.attrs[api.AttrDisplayName] && o.DisplayName != "" {
		r.DisplayName = o.DisplayName
	}
	if c.attrs[api.AttrValueKey] && o.ValueKey != "" {
		r.ValueKey = o.ValueKey
	}
	return r
}

func intrinsicRecord(o *scene.Object) api.ObjectRecord {
	r := api.ObjectRecord{
		ID:       o.ID,
		Kind:     string(o.Kind),
		X:        o.X,
		Y:        o.Y,
		Width:    o.Width,
		Height:   o.Height,
		ScaleX:   o.ScaleX,
		ScaleY:   o.ScaleY,
		Rotation: o.Rotation,
	}
	op := o.Opacity
	r.Opacity = &op
	if o.Visible != nil {
		v := *o.Visible
		r.Visible = &v
	}
	if o.Fill != "" {
		r.Fill = strp(o.Fill)
	}
	if o.Stroke != "" {
		r.Stroke = strp(o.Stroke)
		w := o.StrokeWidth
		r.StrokeWidth = &w
	}
	if o.Kind == scene.KindText {
		r.Text = strp(o.Text)
		if o.FontSize != 0 {
			fs := o.FontSize
			r.FontSize = &fs
		}
		if o.FontFamily != "" {
			r.FontFamily = strp(o.FontFamily)
		}
	}
	if o.Kind == scene.KindImage && o.Src != "" {
		r.Src = strp(o.Src)
	}
	return r
}

func strp(s string) *string { return &s }

// Legacy bag paths, parsed once. The bag only ever appears nested under
// "data" in blobs written before the flat schema existed.
var (
	legacyTypePath  = jp.MustParseString("data.type")
	legacyDynPath   = jp.MustParseString("data.dynamicType")
	legacyReplPath  = jp.MustParseString("data.replaceable")
	legacyColorPath = jp.MustParseString("data.colorProperty")
	legacyTextPath  = jp.MustParseString("data.textProperty")
)

// Import reconstructs a live document from blob and normalizes every
// object before returning. Callers can query roles immediately. A decode
// failure is reported as ErrMalformedBlob; malformed individual entries
// degrade to static objects instead of failing the import.
func (c *Codec) Import(ctx context.Context, blob []byte) (*scene.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parsed, err := oj.Parse(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}
	top, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedBlob)
	}

	doc := scene.New()
	doc.Width = num(top["width"])
	doc.Height = num(top["height"])

	rawObjects, _ := top["objects"].([]any)
	for _, raw := range rawObjects {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		doc.Append(objectFromEntry(entry))
	}

	c.norm.Document(doc)
	return doc, nil
}

func objectFromEntry(m map[string]any) *scene.Object {
	o := scene.NewObject(scene.Kind(str(m["kind"])))
	if id := str(m["id"]); id != "" {
		o.ID = id
	}
	o.X = num(m["x"])
	o.Y = num(m["y"])
	o.Width = num(m["width"])
	o.Height = num(m["height"])
	if _, ok := m["scaleX"]; ok {
		o.ScaleX = num(m["scaleX"])
	}
	if _, ok := m["scaleY"]; ok {
		o.ScaleY = num(m["scaleY"])
	}
	o.Rotation = num(m["rotation"])
	if v, ok := m["opacity"]; ok {
		o.Opacity = num(v)
	}
	if v, ok := m["visible"].(bool); ok {
		o.SetVisible(v)
	}
	o.Fill = str(m["fill"])
	o.Stroke = str(m["stroke"])
	o.StrokeWidth = num(m["strokeWidth"])
	o.Text = str(m["text"])
	o.FontSize = num(m["fontSize"])
	o.FontFamily = str(m["fontFamily"])
	o.Src = str(m["src"])

	o.Role = api.Role(str(m["role"]))
	o.DisplayName = str(m["displayName"])
	o.ValueKey = str(m["valueKey"])

	if bag := legacyFromEntry(m); bag != nil {
		o.Legacy = bag
	}
	return o
}

// legacyFromEntry extracts an attached legacy nested metadata bag, if any.
func legacyFromEntry(m map[string]any) *api.LegacyMeta {
	if _, ok := m["data"].(map[string]any); !ok {
		return nil
	}
	bag := &api.LegacyMeta{
		Type:          str(legacyTypePath.First(m)),
		DynamicType:   str(legacyDynPath.First(m)),
		ColorProperty: str(legacyColorPath.First(m)),
		TextProperty:  str(legacyTextPath.First(m)),
	}
	if b, ok := legacyReplPath.First(m).(bool); ok {
		bag.Replaceable = b
	}
	return bag
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// num accepts the numeric shapes oj.Parse produces.
func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
