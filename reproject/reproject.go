package reproject

import "github.com/arjuote/wkbparse/geom"

// Reproject transforms every vertex of g from fromSRID to toSRID using a
// Transformer obtained from factory, and tags the result with toSRID.
// Topology (counts, nesting, ring order) is preserved bit-for-bit; only
// coordinates change.
func Reproject(g *geom.Geometry, fromSRID, toSRID uint32, factory TransformerFactory) (*geom.Geometry, error) {
	t, err := factory.Transformer(fromSRID, toSRID)
	if err != nil {
		return nil, err
	}
	out, err := reprojectGeometry(g, t)
	if err != nil {
		return nil, err
	}
	return out.WithSRID(toSRID), nil
}
