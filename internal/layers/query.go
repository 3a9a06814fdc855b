// Package layers locates and rewrites role-tagged objects in a live
// document. The query functions here are the only sanctioned way to find
// objects by role; no other component walks the document string-matching
// attributes, so the role contract stays centralized.
package layers

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/scene"
)

// Index maps roles to bitmaps of z-index positions within one snapshot of
// a document's object list. Bitmaps iterate in ascending order, so
// position order is document order for free. Documents are small; an index
// is rebuilt per query pass rather than cached and invalidated.
type Index struct {
	objects []*scene.Object
	roles   map[api.Role]*roaring.Bitmap
}

// BuildIndex snapshots doc and indexes every tagged object by role.
func BuildIndex(doc *scene.Document) *Index {
	ix := &Index{
		objects: doc.Objects(),
		roles:   make(map[api.Role]*roaring.Bitmap),
	}
	for i, o := range ix.objects {
		if o.Role == "" {
			continue
		}
		bm := ix.roles[o.Role]
		if bm == nil {
			bm = roaring.New()
			ix.roles[o.Role] = bm
		}
		bm.Add(uint32(i))
	}
	return ix
}

// Role returns the objects tagged with role, in document order.
func (ix *Index) Role(role api.Role) []*scene.Object {
	bm := ix.roles[role]
	if bm == nil {
		return nil
	}
	out := make([]*scene.Object, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, ix.objects[it.Next()])
	}
	return out
}

// Family returns the union bitmap of all roles in family f. The bitmap
// positions index into Snapshot.
func (ix *Index) Family(f api.Family) *roaring.Bitmap {
	out := roaring.New()
	for r, bm := range ix.roles {
		if r.Family() == f {
			out.Or(bm)
		}
	}
	return out
}

// Snapshot returns the object list the index was built over, in z-order.
func (ix *Index) Snapshot() []*scene.Object { return ix.objects }

// ByRole returns every object in doc whose flat role attribute equals
// role, in document order. Zero matches is a normal, frequent case.
func ByRole(doc *scene.Document, role api.Role) []*scene.Object {
	return BuildIndex(doc).Role(role)
}
