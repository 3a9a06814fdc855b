package layers

import (
	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/scene"
)

// Rect is placement geometry for a new layer.
type Rect struct {
	X, Y, W, H float64
}

// CreateColorRect appends a filled rectangle tagged with a color role,
// selects it, and returns it. The display name comes from the role's
// friendly-name table. A non-color role is stamped as-is; normalization
// treats anything outside the enumeration as static.
func CreateColorRect(doc *scene.Document, role api.Role, at Rect, fill string) *scene.Object {
	o := scene.NewObject(scene.KindRect)
	o.X, o.Y = at.X, at.Y
	o.Width, o.Height = at.W, at.H
	o.Fill = fill
	o.SetVisible(true)
	o.Role = role
	o.DisplayName = role.DisplayName()
	doc.Append(o)
	doc.Select(o.ID)
	return o
}

// CreateTextLayer appends a text object. For the generic text role the
// valueKey disambiguates which slot the text fills and drives the display
// name; specific text roles (team name, jersey number, ...) are labeled by
// role and valueKey is left empty.
func CreateTextLayer(doc *scene.Document, role api.Role, valueKey, text string, at Rect, fontSize float64) *scene.Object {
	o := scene.NewObject(scene.KindText)
	o.X, o.Y = at.X, at.Y
	o.Width, o.Height = at.W, at.H
	o.Text = text
	o.FontSize = fontSize
	o.SetVisible(true)
	o.Role = role
	if role == api.RoleText {
		o.ValueKey = valueKey
		o.DisplayName = api.ValueKeyDisplayName(valueKey)
	} else {
		o.DisplayName = role.DisplayName()
	}
	doc.Append(o)
	doc.Select(o.ID)
	return o
}

// CreateLogoImage appends a team-logo image sized so its rendered extent
// fills the placement rect regardless of the source's pixel dimensions.
func CreateLogoImage(doc *scene.Document, src string, pixelW, pixelH int, at Rect) *scene.Object {
	o := scene.NewObject(scene.KindImage)
	o.X, o.Y = at.X, at.Y
	o.Src = src
	o.Width, o.Height = float64(pixelW), float64(pixelH)
	if pixelW > 0 {
		o.ScaleX = at.W / float64(pixelW)
	}
	if pixelH > 0 {
		o.ScaleY = at.H / float64(pixelH)
	}
	o.SetVisible(true)
	o.Role = api.RoleTeamLogo
	o.DisplayName = api.RoleTeamLogo.DisplayName()
	doc.Append(o)
	doc.Select(o.ID)
	return o
}
