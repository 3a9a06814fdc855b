package report

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/layers"
	"github.com/teamcrest/crest/internal/scene"
)

func sampleDoc() *scene.Document {
	doc := scene.New()
	doc.Width, doc.Height = 1080, 1080
	layers.CreateColorRect(doc, api.RolePrimaryColor, layers.Rect{W: 1080, H: 360}, "#1d428a")
	layers.CreateColorRect(doc, api.RoleSecondaryColor, layers.Rect{W: 1080, H: 360}, "#ffc72c")
	layers.CreateTextLayer(doc, api.RoleTeamName, "", "Hawks", layers.Rect{W: 880, H: 80}, 64)
	layers.CreateTextLayer(doc, api.RoleText, api.ValueKeyName, "Jordan", layers.Rect{W: 880, H: 40}, 24)
	layers.CreateLogoImage(doc, "hawks.png", 512, 512, layers.Rect{W: 200, H: 200})
	static := scene.NewObject(scene.KindRect)
	static.SetVisible(false)
	doc.Append(static)
	return doc
}

func TestBucketTotals(t *testing.T) {
	s := Snapshot(sampleDoc())
	sum := s.Counts.Colors + s.Counts.Texts + s.Counts.Logos + s.Counts.Static
	assert.Equal(t, s.Counts.Total, sum, "buckets must partition the document")
	assert.Equal(t, 6, s.Counts.Total)
	assert.Equal(t, 2, s.Counts.Colors)
	assert.Equal(t, 2, s.Counts.Texts)
	assert.Equal(t, 1, s.Counts.Logos)
	assert.Equal(t, 1, s.Counts.Static)
	assert.Equal(t, 5, s.Counts.Visible)
	assert.Equal(t, 1, s.Counts.Hidden)
}

func TestBucketsDescendingZ(t *testing.T) {
	s := Snapshot(sampleDoc())
	for _, bucket := range [][]Row{s.Colors, s.Texts, s.Logos, s.Static} {
		for i := 1; i < len(bucket); i++ {
			assert.Greater(t, bucket[i-1].ZIndex, bucket[i].ZIndex,
				"buckets are topmost first")
		}
	}
}

func TestRowValuesByFamily(t *testing.T) {
	s := Snapshot(sampleDoc())
	require.Len(t, s.Rows, 6)
	assert.Equal(t, "#1d428a", s.Rows[0].Value)
	assert.Equal(t, "fill", s.Rows[0].Attr)
	assert.Equal(t, "Hawks", s.Rows[2].Value)
	assert.Equal(t, "text", s.Rows[2].Attr)
	assert.Equal(t, "hawks.png", s.Rows[4].Value)
	assert.Equal(t, "src", s.Rows[4].Attr)
	assert.Equal(t, "", s.Rows[5].Value, "static rows carry no value")
}

func TestRowsUseRenderedSize(t *testing.T) {
	s := Snapshot(sampleDoc())
	logo := s.Rows[4]
	assert.InDelta(t, 200.0, logo.Width, 1e-9, "pixel size is 512, rendered is 200")
}

func TestCurrentValues(t *testing.T) {
	vals := CurrentValues(sampleDoc())
	assert.Equal(t, "#1d428a", vals["primary_color"])
	assert.Equal(t, "Hawks", vals["team_name"])
	assert.Equal(t, "Jordan", vals["name"])
	assert.Equal(t, "hawks.png", vals["team_logo"])
	_, ok := vals[""]
	assert.False(t, ok, "static objects contribute nothing")
}

func TestCurrentValuesTopmostWins(t *testing.T) {
	doc := scene.New()
	layers.CreateColorRect(doc, api.RolePrimaryColor, layers.Rect{}, "#below")
	layers.CreateColorRect(doc, api.RolePrimaryColor, layers.Rect{}, "#above")
	assert.Equal(t, "#above", CurrentValues(doc)["primary_color"])
}

func TestEmptyDocument(t *testing.T) {
	s := Snapshot(scene.New())
	assert.Equal(t, 0, s.Counts.Total)
	assert.Empty(t, s.Rows)
	assert.Empty(t, CurrentValues(scene.New()))
}

func TestCSVRoundParses(t *testing.T) {
	s := Snapshot(sampleDoc())
	records, err := csv.NewReader(strings.NewReader(s.CSV())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7) // header + 6 rows
	assert.Equal(t, columns, records[0])
	assert.Equal(t, "team_name", records[3][2])
}

func TestMarkdownSections(t *testing.T) {
	md := Snapshot(sampleDoc()).Markdown()
	assert.Contains(t, md, "## Colors")
	assert.Contains(t, md, "## Logos")
	assert.Contains(t, md, "6 objects")
}

func TestTextListing(t *testing.T) {
	txt := Snapshot(sampleDoc()).Text()
	assert.Contains(t, txt, "role=team_name")
	assert.Contains(t, txt, "hidden")
}
