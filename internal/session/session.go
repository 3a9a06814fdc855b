// Package session owns one live document and the collaborators that edit
// it: the template store, the asset loader, the codec, and the mutators.
// State the surrounding UI needs, such as the current-value map and the
// last saved blob, lives here explicitly instead of in ambient singletons.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/assets"
	"github.com/teamcrest/crest/internal/codec"
	"github.com/teamcrest/crest/internal/layers"
	"github.com/teamcrest/crest/internal/report"
	"github.com/teamcrest/crest/internal/scene"
	"github.com/teamcrest/crest/internal/store"
)

// Options configures a session. Store is required for Open and Save;
// Assets is required for SetLogo.
type Options struct {
	Store       *store.Store
	Assets      assets.Loader
	ExportAttrs []string
	Log         *zap.Logger
}

// Session is a single-editor editing session over one document.
type Session struct {
	Doc  *scene.Document
	Tmpl *store.Template

	st      *store.Store
	codec   *codec.Codec
	updater *layers.Updater
	swapper *layers.LogoSwapper
	log     *zap.Logger

	values map[string]string // current-value snapshot, refreshed after mutators
	saved  []byte            // last persisted blob, revert target

	ctx    context.Context
	cancel context.CancelFunc
}

func newSession(parent context.Context, opts Options, doc *scene.Document, tmpl *store.Template, saved []byte) *Session {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	attrs := opts.ExportAttrs
	if len(attrs) == 0 {
		attrs = api.DefaultExportAttrs()
	}
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		Doc:     doc,
		Tmpl:    tmpl,
		st:      opts.Store,
		codec:   codec.New(attrs, log),
		updater: layers.NewUpdater(log),
		log:     log,
		saved:   saved,
		ctx:     ctx,
		cancel:  cancel,
	}
	if opts.Assets != nil {
		s.swapper = layers.NewLogoSwapper(opts.Assets, log)
	}
	s.refreshValues()
	return s
}

// Open loads the template with the given id from the store and imports its
// document. The document is fully normalized when Open returns.
func Open(ctx context.Context, opts Options, templateID string) (*Session, error) {
	tmpl, err := opts.Store.Load(ctx, templateID)
	if err != nil {
		return nil, err
	}
	c := codec.New(opts.ExportAttrs, opts.Log)
	doc, err := c.Import(ctx, tmpl.Blob)
	if err != nil {
		return nil, fmt.Errorf("import template %s: %w", templateID, err)
	}
	return newSession(ctx, opts, doc, tmpl, tmpl.Blob), nil
}

// NewBlank starts a session over an empty canvas, unsaved.
func NewBlank(ctx context.Context, opts Options, name, sport string, width, height float64) *Session {
	doc := scene.New()
	doc.Width, doc.Height = width, height
	tmpl := &store.Template{Name: name, Sport: sport}
	return newSession(ctx, opts, doc, tmpl, nil)
}

// Close tears the session down. In-flight logo loads observe the
// cancellation and apply nothing.
func (s *Session) Close() { s.cancel() }

// Values returns a copy of the current-value map: value key or role name
// to current content, used to seed external forms.
func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *Session) refreshValues() {
	s.values = report.CurrentValues(s.Doc)
}

// SetText rewrites every text object matching role (and valueKey, for the
// generic text role). Returns the number of objects changed.
func (s *Session) SetText(role api.Role, valueKey, text string) int {
	n := s.updater.SetText(s.Doc, role, valueKey, text)
	if n > 0 {
		s.refreshValues()
	}
	return n
}

// SetColor rewrites the fill of every object with the given color role.
func (s *Session) SetColor(role api.Role, fill string) (int, error) {
	if role.Family() != api.FamilyColor {
		return 0, fmt.Errorf("role %q is not a color role", role)
	}
	n := s.updater.SetFill(s.Doc, role, fill)
	if n > 0 {
		s.refreshValues()
	}
	return n, nil
}

// SetLogo replaces every team-logo image with src. Rejected with
// layers.ErrUpdateInFlight while a previous replacement is still loading.
func (s *Session) SetLogo(src string) (int, error) {
	if s.swapper == nil {
		return 0, fmt.Errorf("no asset source configured")
	}
	n, err := s.swapper.Swap(s.ctx, s.Doc, src)
	if n > 0 {
		s.refreshValues()
	}
	return n, err
}

// Report classifies the document into role buckets.
func (s *Session) Report() *report.Summary { return report.Snapshot(s.Doc) }

// Save exports the document and writes it to the store. The exported blob
// becomes the revert target.
func (s *Session) Save(ctx context.Context) error {
	blob := s.codec.Export(s.Doc)
	s.Tmpl.Blob = blob
	if err := s.st.Save(ctx, s.Tmpl); err != nil {
		return err
	}
	s.saved = blob
	return nil
}

// Export returns the persisted form of the live document without saving.
func (s *Session) Export() []byte { return s.codec.Export(s.Doc) }

// Revert discards unsaved edits by re-importing the last saved blob.
func (s *Session) Revert(ctx context.Context) error {
	if s.saved == nil {
		return fmt.Errorf("nothing saved to revert to")
	}
	doc, err := s.codec.Import(ctx, s.saved)
	if err != nil {
		return fmt.Errorf("revert: %w", err)
	}
	s.Doc = doc
	s.refreshValues()
	return nil
}

// Bootstrap populates an empty document with the starter layers every
// template begins from: the three team color panels, team name, jersey
// number, and a logo placeholder.
func (s *Session) Bootstrap(logoSrc string, logoW, logoH int) {
	w, h := s.Doc.Width, s.Doc.Height
	layers.CreateColorRect(s.Doc, api.RolePrimaryColor, layers.Rect{X: 0, Y: 0, W: w, H: h / 3}, "#1d428a")
	layers.CreateColorRect(s.Doc, api.RoleSecondaryColor, layers.Rect{X: 0, Y: h / 3, W: w, H: h / 3}, "#ffc72c")
	layers.CreateColorRect(s.Doc, api.RoleTertiaryColor, layers.Rect{X: 0, Y: 2 * h / 3, W: w, H: h / 3}, "#ffffff")
	layers.CreateTextLayer(s.Doc, api.RoleTeamName, "", "TEAM NAME", layers.Rect{X: w * 0.1, Y: h * 0.1, W: w * 0.8, H: 80}, 64)
	layers.CreateTextLayer(s.Doc, api.RoleJerseyNumber, "", "00", layers.Rect{X: w * 0.4, Y: h * 0.45, W: w * 0.2, H: 120}, 96)
	layers.CreateTextLayer(s.Doc, api.RoleText, api.ValueKeyAdditionalText, "", layers.Rect{X: w * 0.1, Y: h * 0.85, W: w * 0.8, H: 40}, 24)
	layers.CreateLogoImage(s.Doc, logoSrc, logoW, logoH, layers.Rect{X: w*0.5 - 100, Y: h*0.6 - 100, W: 200, H: 200})
	s.refreshValues()
}
