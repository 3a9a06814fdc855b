package layers

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/assets"
	"github.com/teamcrest/crest/internal/scene"
)

// ErrUpdateInFlight is returned when a logo swap is requested while a
// previous swap's image loads are still pending on the same document. The
// rejected call is a no-op; the first call completes normally.
var ErrUpdateInFlight = errors.New("logo update already in flight")

// LogoSwapper replaces every team-logo image in a document with a new
// source. Image loading is the one asynchronous mutation in the system:
// rapid re-triggers (team-switch clicks) could otherwise both read the
// "before" state and both insert replacements, leaving duplicates. The
// document's two-state guard (idle/updating) serializes swaps per
// document; acquisition and release are paired in Swap on every exit path.
type LogoSwapper struct {
	log    *zap.Logger
	loader assets.Loader
}

// NewLogoSwapper returns a swapper loading through loader. A nil logger
// disables logging.
func NewLogoSwapper(loader assets.Loader, log *zap.Logger) *LogoSwapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogoSwapper{log: log, loader: loader}
}

// Swap replaces each logo object with one referencing src, preserving
// position, rotation, and rendered size. Loads run concurrently, one per
// matched object; a failed load skips that object and the rest of the
// batch proceeds. Returns the number of objects replaced.
//
// A call while another swap is in flight returns ErrUpdateInFlight and
// changes nothing. A cancelled context applies nothing and returns the
// context error; the document is left as it was.
func (s *LogoSwapper) Swap(ctx context.Context, doc *scene.Document, src string) (int, error) {
	if !doc.BeginUpdate() {
		s.log.Warn("logo update rejected: previous update still in flight",
			zap.String("src", src))
		return 0, ErrUpdateInFlight
	}
	defer doc.EndUpdate()

	matched := make([]*scene.Object, 0, 2)
	for _, o := range ByRole(doc, api.RoleTeamLogo) {
		if o.Kind == scene.KindImage {
			matched = append(matched, o)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}

	type result struct {
		img assets.Image
		err error
	}
	results := make([]result, len(matched))
	var wg sync.WaitGroup
	for i := range matched {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := s.loader.Load(ctx, src)
			results[i] = result{img: img, err: err}
		}(i)
	}
	wg.Wait()

	// Torn down while loading: the completions are stale, apply nothing.
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	applied := 0
	for i, old := range matched {
		if results[i].err != nil {
			s.log.Warn("logo load failed, object skipped",
				zap.String("object", old.ID), zap.String("src", src),
				zap.Error(results[i].err))
			continue
		}
		idx := doc.IndexOf(old.ID)
		if idx < 0 {
			// Removed out from under us; nothing to replace.
			continue
		}
		if _, err := doc.RemoveAt(idx); err != nil {
			continue
		}
		doc.InsertAt(idx, replacementFor(old, results[i].img))
		applied++
	}
	if applied > 0 {
		doc.RequestRender()
	}
	return applied, nil
}

// replacementFor builds the new logo object: same position, rotation,
// opacity, visibility, and semantic triple as old, with scale recomputed
// from the new image's intrinsic pixel size so the rendered extent matches
// the original's.
func replacementFor(old *scene.Object, img assets.Image) *scene.Object {
	o := scene.NewObject(scene.KindImage)
	o.X, o.Y = old.X, old.Y
	o.Rotation = old.Rotation
	o.Opacity = old.Opacity
	if old.Visible != nil {
		o.SetVisible(*old.Visible)
	}
	o.Src = img.Path
	o.Width, o.Height = float64(img.Width), float64(img.Height)
	o.ScaleX, o.ScaleY = 1, 1
	if img.Width > 0 {
		o.ScaleX = old.RenderedWidth() / float64(img.Width)
	}
	if img.Height > 0 {
		o.ScaleY = old.RenderedHeight() / float64(img.Height)
	}
	o.Role = old.Role
	o.DisplayName = old.DisplayName
	o.ValueKey = old.ValueKey
	return o
}
