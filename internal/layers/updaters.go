package layers

import (
	"go.uber.org/zap"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/scene"
)

// Updater rewrites the visible content of every object matching a role.
// Text and color updates are synchronous: they complete entirely before
// returning, so no interleaving is possible between the query and the
// mutation. Updates are idempotent and order-independent across the
// matched set, and zero matches is a silent no-op.
type Updater struct {
	log *zap.Logger
}

// NewUpdater returns an Updater logging through log. A nil logger
// disables logging.
func NewUpdater(log *zap.Logger) *Updater {
	if log == nil {
		log = zap.NewNop()
	}
	return &Updater{log: log}
}

// SetText overwrites the text content of every object with the given
// role. For the generic text role, valueKey narrows the match to one text
// slot; specific text roles match by role alone and valueKey is ignored.
// Returns the number of objects rewritten.
func (u *Updater) SetText(doc *scene.Document, role api.Role, valueKey, text string) int {
	n := 0
	for _, o := range ByRole(doc, role) {
		if o.Kind != scene.KindText {
			continue
		}
		if role == api.RoleText && o.ValueKey != valueKey {
			continue
		}
		o.Text = text
		n++
	}
	if n > 0 {
		u.log.Debug("text updated",
			zap.String("role", string(role)), zap.String("valueKey", valueKey), zap.Int("objects", n))
		doc.RequestRender()
	}
	return n
}

// SetFill overwrites the fill of every object with the given color role.
// Geometry and type are untouched. Returns the number of objects
// rewritten.
func (u *Updater) SetFill(doc *scene.Document, role api.Role, fill string) int {
	n := 0
	for _, o := range ByRole(doc, role) {
		o.Fill = fill
		n++
	}
	if n > 0 {
		u.log.Debug("fill updated",
			zap.String("role", string(role)), zap.String("fill", fill), zap.Int("objects", n))
		doc.RequestRender()
	}
	return n
}
