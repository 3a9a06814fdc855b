package layers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/assets"
	"github.com/teamcrest/crest/internal/scene"
)

// stubLoader is an assets.Loader with scriptable results. If gate is
// non-nil, Load blocks until the gate closes, which lets tests hold a swap
// in its loading phase.
type stubLoader struct {
	img   assets.Image
	errOn int32 // fail the nth call (1-based), 0 for never
	gate  chan struct{}
	calls atomic.Int32
}

func (s *stubLoader) Load(ctx context.Context, path string) (assets.Image, error) {
	n := s.calls.Add(1)
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return assets.Image{}, ctx.Err()
		}
	}
	if s.errOn != 0 && n == s.errOn {
		return assets.Image{}, errors.New("decode failed")
	}
	img := s.img
	img.Path = path
	return img, nil
}

func logoDoc(t *testing.T, n int) (*scene.Document, []*scene.Object) {
	t.Helper()
	doc := scene.New()
	doc.Append(scene.NewObject(scene.KindRect)) // static layer below
	var logos []*scene.Object
	for i := 0; i < n; i++ {
		o := CreateLogoImage(doc, "old.png", 400, 200, Rect{X: 10, Y: 20, W: 100, H: 50})
		o.Rotation = 15
		logos = append(logos, o)
	}
	return doc, logos
}

func TestSwapPreservesGeometry(t *testing.T) {
	doc, logos := logoDoc(t, 1)
	old := logos[0]
	oldIdx := doc.IndexOf(old.ID)

	loader := &stubLoader{img: assets.Image{Width: 800, Height: 800}}
	n, err := NewLogoSwapper(loader, nil).Swap(context.Background(), doc, "new.png")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	repl, err := doc.Get(doc.Objects()[oldIdx].ID)
	require.NoError(t, err)
	assert.Equal(t, oldIdx, doc.IndexOf(repl.ID), "replacement sits at the original z-index")
	assert.Equal(t, "new.png", repl.Src)
	assert.Equal(t, old.X, repl.X)
	assert.Equal(t, old.Y, repl.Y)
	assert.Equal(t, old.Rotation, repl.Rotation)
	assert.InDelta(t, old.RenderedWidth(), repl.RenderedWidth(), 1e-6)
	assert.InDelta(t, old.RenderedHeight(), repl.RenderedHeight(), 1e-6)
	assert.Equal(t, api.RoleTeamLogo, repl.Role)
	assert.Equal(t, old.DisplayName, repl.DisplayName)
}

func TestSwapNoLogosIsSilent(t *testing.T) {
	doc := scene.New()
	doc.Append(scene.NewObject(scene.KindRect))
	loader := &stubLoader{img: assets.Image{Width: 10, Height: 10}}
	n, err := NewLogoSwapper(loader, nil).Swap(context.Background(), doc, "new.png")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, int32(0), loader.calls.Load(), "no matches, no loads")
}

func TestSwapRejectsReentrantCall(t *testing.T) {
	doc, _ := logoDoc(t, 2)
	gate := make(chan struct{})
	loader := &stubLoader{img: assets.Image{Width: 800, Height: 800}, gate: gate}
	swapper := NewLogoSwapper(loader, nil)

	done := make(chan int, 1)
	go func() {
		n, _ := swapper.Swap(context.Background(), doc, "first.png")
		done <- n
	}()

	// Wait for the first swap to be inside its loading phase.
	for loader.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	n, err := swapper.Swap(context.Background(), doc, "second.png")
	assert.ErrorIs(t, err, ErrUpdateInFlight)
	assert.Equal(t, 0, n)

	close(gate)
	assert.Equal(t, 2, <-done, "the first call still completes")

	// Exactly one update applied: same logo count, no duplicates.
	assert.Len(t, ByRole(doc, api.RoleTeamLogo), 2)
	for _, o := range ByRole(doc, api.RoleTeamLogo) {
		assert.Equal(t, "first.png", o.Src)
	}

	// The guard was released; a later call proceeds.
	loader.gate = nil
	_, err = swapper.Swap(context.Background(), doc, "third.png")
	assert.NoError(t, err)
}

func TestSwapGuardReleasedAfterFailure(t *testing.T) {
	doc, _ := logoDoc(t, 1)
	loader := &stubLoader{errOn: 1}
	swapper := NewLogoSwapper(loader, nil)

	n, err := swapper.Swap(context.Background(), doc, "bad.png")
	require.NoError(t, err, "a load failure is per-object, not a swap failure")
	assert.Equal(t, 0, n)

	// Must not be wedged.
	loader.errOn = 0
	loader.img = assets.Image{Width: 10, Height: 10}
	n, err = swapper.Swap(context.Background(), doc, "good.png")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSwapOneFailureDoesNotAbortBatch(t *testing.T) {
	doc, _ := logoDoc(t, 3)
	loader := &stubLoader{img: assets.Image{Width: 800, Height: 800}, errOn: 2}
	n, err := NewLogoSwapper(loader, nil).Swap(context.Background(), doc, "new.png")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, ByRole(doc, api.RoleTeamLogo), 3, "failed object keeps its original")
}

func TestSwapCancelledContextAppliesNothing(t *testing.T) {
	doc, logos := logoDoc(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &stubLoader{img: assets.Image{Width: 800, Height: 800}}
	n, err := NewLogoSwapper(loader, nil).Swap(ctx, doc, "new.png")
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "old.png", logos[0].Src, "stale completion must not apply")
}
