// Package reproject implements the reprojection pass: a tree walk that
// replaces every vertex of a Geometry with its image under an injected
// coordinate transformer, batching per vertex array.
//
// Transformer/TransformerFactory are the external-collaborator contract;
// the reprojection math itself is deliberately left open for a host to
// supply. BuiltinFactory (mercator.go, tmerc.go) is a reference
// implementation covering a handful of common SRIDs.
package reproject

import (
	"github.com/arjuote/wkbparse/geom"
	"github.com/arjuote/wkbparse/wkerr"
)

// Transformer maps batches of coordinates from one SRID to another. A
// single instance may be reused across many calls but must not be assumed
// goroutine-safe by its caller.
type Transformer interface {
	// Transform2D maps parallel X/Y slices, returning new slices of the
	// same length.
	Transform2D(xs, ys []float64) (outX, outY []float64, err error)
	// Transform3D maps parallel X/Y/Z slices. Only called when Is3D
	// reports true.
	Transform3D(xs, ys, zs []float64) (outX, outY, outZ []float64, err error)
	// Is3D reports whether this Transformer also transforms the Z
	// ordinate; if false, Z is copied through unchanged by the pass.
	Is3D() bool
}

// TransformerFactory constructs a Transformer for a given SRID pair.
// Construction may be expensive (e.g. loading a projection definition);
// LRUTransformerFactory exists to amortize that cost across calls.
type TransformerFactory interface {
	Transformer(fromSRID, toSRID uint32) (Transformer, error)
}

// reprojectGeometry walks g's tree, replacing every vertex array via t,
// batching one Transform2D/Transform3D call per array. It never attaches
// an SRID — Reproject does that once, at the top, after the walk succeeds.
func reprojectGeometry(g *geom.Geometry, t Transformer) (*geom.Geometry, error) {
	out := &geom.Geometry{Kind: g.Kind, Dims: g.Dims}

	switch g.Kind {
	case geom.Point:
		verts, err := transformVertices(t, []geom.Vertex{g.PointVal}, g.Dims)
		if err != nil {
			return nil, err
		}
		out.PointVal = verts[0]

	case geom.LineString:
		verts, err := transformVertices(t, g.LineStringVal, g.Dims)
		if err != nil {
			return nil, err
		}
		out.LineStringVal = verts

	case geom.Polygon:
		rings := make([]geom.Ring, len(g.PolygonVal))
		for i, ring := range g.PolygonVal {
			v, err := transformVertices(t, ring, g.Dims)
			if err != nil {
				return nil, err
			}
			rings[i] = v
		}
		out.PolygonVal = rings

	case geom.MultiPoint:
		verts, err := transformVertices(t, g.MultiPointVal, g.Dims)
		if err != nil {
			return nil, err
		}
		out.MultiPointVal = verts

	case geom.MultiLineString:
		lines := make([]geom.Ring, len(g.MultiLineVal))
		for i, line := range g.MultiLineVal {
			v, err := transformVertices(t, line, g.Dims)
			if err != nil {
				return nil, err
			}
			lines[i] = v
		}
		out.MultiLineVal = lines

	case geom.MultiPolygon:
		polys := make([][]geom.Ring, len(g.MultiPolyVal))
		for i, poly := range g.MultiPolyVal {
			rings := make([]geom.Ring, len(poly))
			for j, ring := range poly {
				v, err := transformVertices(t, ring, g.Dims)
				if err != nil {
					return nil, err
				}
				rings[j] = v
			}
			polys[i] = rings
		}
		out.MultiPolyVal = polys

	case geom.GeometryCollection:
		children := make([]*geom.Geometry, len(g.CollectionVal))
		for i, child := range g.CollectionVal {
			rc, err := reprojectGeometry(child, t)
			if err != nil {
				return nil, err
			}
			children[i] = rc
		}
		out.CollectionVal = children

	default:
		return nil, wkerr.New(wkerr.ErrKindUnknownGeometryType, "cannot reproject geometry kind %s", g.Kind)
	}

	return out, nil
}

func transformVertices(t Transformer, verts []geom.Vertex, dims geom.Dims) ([]geom.Vertex, error) {
	n := len(verts)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, v := range verts {
		xs[i] = v.X
		ys[i] = v.Y
	}

	if dims.HasZ() && t.Is3D() {
		zs := make([]float64, n)
		for i, v := range verts {
			zs[i] = v.Z
		}
		txs, tys, tzs, err := t.Transform3D(xs, ys, zs)
		if err != nil {
			return nil, wkerr.Wrap(wkerr.ErrKindReprojectionFailed, err, "transforming %d vertices", n)
		}
		out := make([]geom.Vertex, n)
		for i := range out {
			out[i] = geom.Vertex{X: txs[i], Y: tys[i], Z: tzs[i], M: verts[i].M}
		}
		return out, nil
	}

	txs, tys, err := t.Transform2D(xs, ys)
	if err != nil {
		return nil, wkerr.Wrap(wkerr.ErrKindReprojectionFailed, err, "transforming %d vertices", n)
	}
	out := make([]geom.Vertex, n)
	for i := range out {
		out[i] = geom.Vertex{X: txs[i], Y: tys[i], Z: verts[i].Z, M: verts[i].M}
	}
	return out, nil
}
