// Full editing cycle across package boundaries: create a template,
// bootstrap it, persist it, reopen it, mutate every role family, and
// verify the round trip through the store preserves the semantic tags.
package tests

import (
	"context"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/assets"
	"github.com/teamcrest/crest/internal/session"
	"github.com/teamcrest/crest/internal/store"
)

func TestTemplateLifecycle(t *testing.T) {
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), "crest.db"), nil)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	fsys := memfs.New()
	for name, dim := range map[string]int{"placeholder.png": 512, "hawks.png": 300} {
		f, err := fsys.Create(name)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, dim, dim))))
		require.NoError(t, f.Close())
	}

	opts := session.Options{Store: st, Assets: assets.NewFS(fsys)}

	// Author a fresh template.
	s := session.NewBlank(ctx, opts, "matchup", "basketball", 1080, 1350)
	s.Bootstrap("placeholder.png", 512, 512)
	require.NoError(t, s.Save(ctx))
	id := s.Tmpl.ID
	require.NotEmpty(t, id)
	s.Close()

	// Reopen and fill it in for a specific game.
	s, err = session.Open(ctx, opts, id)
	require.NoError(t, err)

	assert.Equal(t, 1, s.SetText(api.RoleTeamName, "", "Hawks"))
	assert.Equal(t, 1, s.SetText(api.RoleJerseyNumber, "", "23"))
	assert.Equal(t, 1, s.SetText(api.RoleText, api.ValueKeyAdditionalText, "Season opener"))

	n, err := s.SetColor(api.RolePrimaryColor, "#C8102E")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	logoRows := s.Report().Logos
	require.Len(t, logoRows, 1)
	wantW, wantH := logoRows[0].Width, logoRows[0].Height

	n, err = s.SetLogo("hawks.png")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Save(ctx))
	s.Close()

	// A third open sees everything that was saved, renormalized.
	s, err = session.Open(ctx, opts, id)
	require.NoError(t, err)
	defer s.Close()

	vals := s.Values()
	assert.Equal(t, "Hawks", vals["team_name"])
	assert.Equal(t, "23", vals["jersey_number"])
	assert.Equal(t, "Season opener", vals[api.ValueKeyAdditionalText])
	assert.Equal(t, "#C8102E", vals["primary_color"])
	assert.Equal(t, "hawks.png", vals["team_logo"])

	sum := s.Report()
	assert.Equal(t, 3, sum.Counts.Colors)
	assert.Equal(t, 3, sum.Counts.Texts)
	assert.Equal(t, 1, sum.Counts.Logos)
	assert.Equal(t, sum.Counts.Total, sum.Counts.Visible)

	// The swap kept the placeholder's rendered footprint.
	logoRows = sum.Logos
	require.Len(t, logoRows, 1)
	assert.InDelta(t, wantW, logoRows[0].Width, 1e-6)
	assert.InDelta(t, wantH, logoRows[0].Height, 1e-6)
}

func TestLegacyTemplateMigratesOnOpen(t *testing.T) {
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), "crest.db"), nil)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	// A blob in the pre-role shape: tags buried in a nested data bag.
	blob := []byte(`{
		"version": 1,
		"width": 1080,
		"height": 1080,
		"objects": [
			{"kind": "rect", "x": 0, "y": 0, "width": 1080, "height": 360,
			 "fill": "#1d428a",
			 "data": {"type": "dynamic", "dynamicType": "primary_color"}},
			{"kind": "text", "x": 100, "y": 500, "width": 880, "height": 80,
			 "text": "HAWKS",
			 "data": {"type": "dynamic", "dynamicType": "text", "textProperty": "team name"}},
			{"kind": "image", "x": 440, "y": 700, "width": 200, "height": 200,
			 "src": "logo.png",
			 "data": {"type": "dynamic", "dynamicType": "team_logo"}}
		]
	}`)
	tmpl := &store.Template{Name: "legacy", Sport: "basketball", Blob: blob}
	require.NoError(t, st.Save(ctx, tmpl))

	s, err := session.Open(ctx, session.Options{Store: st}, tmpl.ID)
	require.NoError(t, err)
	defer s.Close()

	vals := s.Values()
	assert.Equal(t, "#1d428a", vals["primary_color"])
	assert.Equal(t, "HAWKS", vals[api.ValueKeyTeamName])
	assert.Equal(t, "logo.png", vals["team_logo"])

	// Saving writes the modern shape: the nested bag never survives export.
	require.NoError(t, s.Save(ctx))
	saved, err := st.Load(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(saved.Blob), "dynamicType")
	assert.Contains(t, string(saved.Blob), `"role"`)
}
