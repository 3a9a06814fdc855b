package scene

import "testing"

func TestDocumentOrderIsZOrder(t *testing.T) {
	d := New()
	a := NewObject(KindRect)
	b := NewObject(KindText)
	c := NewObject(KindImage)
	d.Append(a)
	d.Append(b)
	d.InsertAt(1, c)

	got := d.Objects()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != a || got[1] != c || got[2] != b {
		t.Error("InsertAt did not preserve surrounding order")
	}
}

func TestDocumentRemoveAtReindexes(t *testing.T) {
	d := New()
	a := NewObject(KindRect)
	b := NewObject(KindRect)
	d.Append(a)
	d.Append(b)

	removed, err := d.RemoveAt(0)
	if err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if removed != a {
		t.Error("removed wrong object")
	}
	if d.IndexOf(b.ID) != 0 {
		t.Errorf("IndexOf(b) = %d, want 0", d.IndexOf(b.ID))
	}
	if _, err := d.RemoveAt(5); err == nil {
		t.Error("out-of-range RemoveAt should fail")
	}
}

func TestDocumentSelection(t *testing.T) {
	d := New()
	a := NewObject(KindRect)
	d.Append(a)

	d.Select(a.ID)
	if d.Selected() != a {
		t.Error("Selected should return a")
	}
	d.Select("nope")
	if d.Selected() != nil {
		t.Error("unknown ID should clear selection")
	}

	d.Select(a.ID)
	if err := d.Remove(a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if d.Selected() != nil {
		t.Error("removing the selected object should clear selection")
	}
}

func TestRequestRenderCountsAndNotifies(t *testing.T) {
	d := New()
	fired := 0
	d.OnRender(func() { fired++ })
	d.RequestRender()
	d.RequestRender()
	if fired != 2 {
		t.Errorf("hook fired %d times, want 2", fired)
	}
	if d.RenderRequests() != 2 {
		t.Errorf("RenderRequests = %d, want 2", d.RenderRequests())
	}
}

func TestUpdateGuardIsExclusive(t *testing.T) {
	d := New()
	if !d.BeginUpdate() {
		t.Fatal("first BeginUpdate should succeed")
	}
	if d.BeginUpdate() {
		t.Fatal("second BeginUpdate should be rejected while updating")
	}
	d.EndUpdate()
	if !d.BeginUpdate() {
		t.Error("BeginUpdate should succeed again after EndUpdate")
	}
	d.EndUpdate()
}

func TestObjectRenderedSize(t *testing.T) {
	o := NewObject(KindImage)
	o.Width, o.Height = 100, 50
	o.ScaleX, o.ScaleY = 2, 3
	if o.RenderedWidth() != 200 || o.RenderedHeight() != 150 {
		t.Errorf("rendered = %gx%g, want 200x150", o.RenderedWidth(), o.RenderedHeight())
	}
}

func TestObjectVisibility(t *testing.T) {
	o := NewObject(KindRect)
	if !o.IsVisible() {
		t.Error("unset visibility counts as visible")
	}
	o.SetVisible(false)
	if o.IsVisible() {
		t.Error("explicit false should stick")
	}
}
