// Package normalize repairs and migrates the semantic attributes of scene
// objects. It runs once over every object after import, is idempotent and
// order-independent, and never fails: an object that cannot be classified
// is left static so a template always remains openable.
package normalize

import (
	"go.uber.org/zap"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/scene"
)

// Normalizer applies the repair pass. The zero value is usable; a logger
// can be attached for visibility into migrations.
type Normalizer struct {
	log *zap.Logger
}

// New returns a Normalizer logging through log. A nil logger disables
// logging.
func New(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{log: log}
}

// Document normalizes every object in doc. Shorthand for a silent
// Normalizer, used by tests and the import path when no logger is wired.
func Document(doc *scene.Document) {
	New(nil).Document(doc)
}

// Document normalizes every object in doc in z-order. Order does not
// affect the outcome; each object is repaired independently.
func (n *Normalizer) Document(doc *scene.Document) {
	for _, o := range doc.Objects() {
		n.Object(o)
	}
}

// Object resolves o's role/displayName/valueKey triple in place.
//
// The steps run in a fixed order so the pass is idempotent: dropping
// unknown roles, migrating any legacy bag, inferring color roles from
// display names, defaulting text value keys, forcing the logo role,
// defaulting visibility, assigning the generic text role only to untagged
// text objects, and finally deriving a display name. Roles that are
// already specific (team name, jersey number, ...) are preserved exactly.
func (n *Normalizer) Object(o *scene.Object) {
	// An unrecognized role is treated as absent.
	if o.Role != "" && !o.Role.Valid() {
		n.log.Debug("dropping unrecognized role",
			zap.String("object", o.ID), zap.String("role", string(o.Role)))
		o.Role = ""
	}

	n.migrateLegacy(o)

	// Documents saved after roles existed but before inference ran carry
	// only the display name. Color names are unambiguous, so recover the
	// role from them.
	if o.Role == "" && o.DisplayName != "" {
		if r, ok := api.ColorRoleForDisplayName(o.DisplayName); ok {
			o.Role = r
		}
	}

	// A text object past normalization never has an undefined valueKey:
	// default the generic case to "additional text". Specific text roles
	// keep whatever key they carry (including none is fine pre-step, but
	// generic and untagged text always get the default).
	if o.Kind == scene.KindText && o.ValueKey == "" &&
		(o.Role == "" || o.Role == api.RoleText) {
		o.ValueKey = api.ValueKeyAdditionalText
	}

	// Images labeled "Team Logo" are logo layers even if the role was
	// never stamped.
	if o.Kind == scene.KindImage &&
		(o.Role == api.RoleTeamLogo || o.DisplayName == api.RoleTeamLogo.DisplayName()) {
		o.Role = api.RoleTeamLogo
		if o.DisplayName == "" {
			o.DisplayName = api.RoleTeamLogo.DisplayName()
		}
	}

	if o.Visible == nil {
		o.SetVisible(true)
	}

	// Only an object with no role at all gets the generic text role; a
	// specific text role must survive untouched.
	if o.Kind == scene.KindText && o.Role == "" {
		o.Role = api.RoleText
	}

	if o.DisplayName == "" {
		o.DisplayName = deriveDisplayName(o)
	}
}

// migrateLegacy reads an attached legacy nested metadata bag, once, into
// the flat attributes. The bag itself is left in place; export never reads
// it, so it cannot leak back into persisted output.
func (n *Normalizer) migrateLegacy(o *scene.Object) {
	if o.Legacy == nil || o.Role != "" {
		return
	}
	r := api.Role(o.Legacy.DynamicType)
	if !r.Valid() {
		// Unknown legacy tag: leave the object static.
		if o.Legacy.DynamicType != "" {
			n.log.Debug("legacy metadata with unknown dynamicType",
				zap.String("object", o.ID),
				zap.String("dynamicType", o.Legacy.DynamicType))
		}
		return
	}
	o.Role = r
	if o.Kind == scene.KindText && o.ValueKey == "" && o.Legacy.TextProperty != "" {
		o.ValueKey = o.Legacy.TextProperty
	}
	n.log.Debug("migrated legacy metadata",
		zap.String("object", o.ID), zap.String("role", string(r)))
}

func deriveDisplayName(o *scene.Object) string {
	switch o.Role.Family() {
	case api.FamilyText:
		if o.Role == api.RoleText {
			return api.ValueKeyDisplayName(o.ValueKey)
		}
		return o.Role.DisplayName()
	case api.FamilyColor:
		return o.Role.DisplayName()
	case api.FamilyImage:
		return o.Role.DisplayName()
	default:
		return api.Capitalize(string(o.Kind))
	}
}
