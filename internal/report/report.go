// Package report derives read-only summaries from a live document:
// per-object role classification, role-family buckets, aggregate counts,
// and the flat current-value map that seeds external forms. Everything
// here is recomputed on demand and mutates nothing.
package report

import (
	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/layers"
	"github.com/teamcrest/crest/internal/scene"
)

// Row is one object's classification. Width/Height are rendered extents,
// not raw pixel dimensions.
type Row struct {
	ZIndex      int
	ID          string
	Name        string
	Kind        scene.Kind
	Role        api.Role
	ValueKey    string
	Value       string // fill color, text content, or image source by family
	Attr        string // which intrinsic attribute Value came from
	Visible     bool
	X, Y        float64
	Width       float64
	Height      float64
}

// Counts aggregates the snapshot totals. The four buckets always sum to
// Total, and Visible+Hidden equals Total.
type Counts struct {
	Total   int
	Colors  int
	Texts   int
	Logos   int
	Static  int
	Visible int
	Hidden  int
}

// Summary is one point-in-time classification of a document.
type Summary struct {
	Rows []Row // document z-order

	// Buckets, each ordered by descending z-index (topmost first).
	Colors []Row
	Texts  []Row
	Logos  []Row
	Static []Row

	Counts Counts
}

// Snapshot classifies every object in doc into role buckets.
func Snapshot(doc *scene.Document) *Summary {
	ix := layers.BuildIndex(doc)
	objects := ix.Snapshot()

	s := &Summary{Rows: make([]Row, 0, len(objects))}
	for i, o := range objects {
		s.Rows = append(s.Rows, rowFor(i, o))
	}

	colors := ix.Family(api.FamilyColor)
	texts := ix.Family(api.FamilyText)
	logos := ix.Family(api.FamilyImage)

	// Buckets are topmost-first, so walk z-order backwards.
	for i := len(s.Rows) - 1; i >= 0; i-- {
		z := uint32(i)
		switch {
		case colors.Contains(z):
			s.Colors = append(s.Colors, s.Rows[i])
		case texts.Contains(z):
			s.Texts = append(s.Texts, s.Rows[i])
		case logos.Contains(z):
			s.Logos = append(s.Logos, s.Rows[i])
		default:
			s.Static = append(s.Static, s.Rows[i])
		}
	}

	s.Counts = Counts{
		Total:  len(s.Rows),
		Colors: len(s.Colors),
		Texts:  len(s.Texts),
		Logos:  len(s.Logos),
		Static: len(s.Static),
	}
	for _, r := range s.Rows {
		if r.Visible {
			s.Counts.Visible++
		} else {
			s.Counts.Hidden++
		}
	}
	return s
}

func rowFor(z int, o *scene.Object) Row {
	r := Row{
		ZIndex:   z,
		ID:       o.ID,
		Name:     o.DisplayName,
		Kind:     o.Kind,
		Role:     o.Role,
		ValueKey: o.ValueKey,
		Visible:  o.IsVisible(),
		X:        o.X,
		Y:        o.Y,
		Width:    o.RenderedWidth(),
		Height:   o.RenderedHeight(),
	}
	switch o.Role.Family() {
	case api.FamilyColor:
		r.Value, r.Attr = o.Fill, "fill"
	case api.FamilyText:
		r.Value, r.Attr = o.Text, "text"
	case api.FamilyImage:
		r.Value, r.Attr = o.Src, "src"
	}
	return r
}

// CurrentValues returns the flat map from value key (generic text) or role
// name (everything else) to the current content. When several objects
// share a slot, the topmost one wins.
func CurrentValues(doc *scene.Document) map[string]string {
	out := make(map[string]string)
	for _, o := range doc.Objects() {
		switch o.Role.Family() {
		case api.FamilyColor:
			out[string(o.Role)] = o.Fill
		case api.FamilyText:
			if o.Role == api.RoleText {
				if o.ValueKey != "" {
					out[o.ValueKey] = o.Text
				}
			} else {
				out[string(o.Role)] = o.Text
			}
		case api.FamilyImage:
			out[string(o.Role)] = o.Src
		}
	}
	return out
}
