// Bridge to github.com/twpayne/go-geom's Layout-tagged geom.T union, used
// by encoding/ewkb's plain-WKB interop helpers to round-trip through
// go-geom's own WKB/WKT codecs.
//
// Grounded on connected-systems-go's internal/repository/testutil/
// postgis.go (geom.NewPoint/NewLineString/.../MustSetCoords/.SetSRID
// construction) for the forward direction, and its internal/model/
// common_shared/go_geom.go (FlatCoords/Ends/NumPolygons/NumGeoms/
// NumLineStrings accessors, Push with no error return) for the reverse.
package geom

import (
	ggeom "github.com/twpayne/go-geom"

	"github.com/arjuote/wkbparse/wkerr"
)

func dimsToLayout(d Dims) ggeom.Layout {
	switch d {
	case XYZ:
		return ggeom.XYZ
	case XYM:
		return ggeom.XYM
	case XYZM:
		return ggeom.XYZM
	default:
		return ggeom.XY
	}
}

func layoutToDims(l ggeom.Layout) Dims {
	switch l {
	case ggeom.XYZ:
		return XYZ
	case ggeom.XYM:
		return XYM
	case ggeom.XYZM:
		return XYZM
	default:
		return XY
	}
}

func coordFromVertex(v Vertex, dims Dims) ggeom.Coord {
	return ggeom.Coord(v.Ordinates(dims))
}

func coordsFromRing(r Ring, dims Dims) []ggeom.Coord {
	out := make([]ggeom.Coord, len(r))
	for i, v := range r {
		out[i] = coordFromVertex(v, dims)
	}
	return out
}

func coordsFromRings(rings []Ring, dims Dims) [][]ggeom.Coord {
	out := make([][]ggeom.Coord, len(rings))
	for i, r := range rings {
		out[i] = coordsFromRing(r, dims)
	}
	return out
}

// ToGoGeom converts g into go-geom's geom.T union, for interop with
// go-geom-based encoders (encoding/wkb, encoding/wkt).
func ToGoGeom(g *Geometry) (ggeom.T, error) {
	layout := dimsToLayout(g.Dims)

	switch g.Kind {
	case Point:
		p := ggeom.NewPoint(layout).MustSetCoords(coordFromVertex(g.PointVal, g.Dims))
		if g.SRID != nil {
			p.SetSRID(int(*g.SRID))
		}
		return p, nil

	case LineString:
		ls := ggeom.NewLineString(layout).MustSetCoords(coordsFromRing(g.LineStringVal, g.Dims))
		if g.SRID != nil {
			ls.SetSRID(int(*g.SRID))
		}
		return ls, nil

	case Polygon:
		poly := ggeom.NewPolygon(layout).MustSetCoords(coordsFromRings(g.PolygonVal, g.Dims))
		if g.SRID != nil {
			poly.SetSRID(int(*g.SRID))
		}
		return poly, nil

	case MultiPoint:
		mp := ggeom.NewMultiPoint(layout).MustSetCoords(coordsFromRing(Ring(g.MultiPointVal), g.Dims))
		if g.SRID != nil {
			mp.SetSRID(int(*g.SRID))
		}
		return mp, nil

	case MultiLineString:
		mls := ggeom.NewMultiLineString(layout).MustSetCoords(coordsFromRings(g.MultiLineVal, g.Dims))
		if g.SRID != nil {
			mls.SetSRID(int(*g.SRID))
		}
		return mls, nil

	case MultiPolygon:
		mpoly := ggeom.NewMultiPolygon(layout)
		if g.SRID != nil {
			mpoly.SetSRID(int(*g.SRID))
		}
		for _, rings := range g.MultiPolyVal {
			p := ggeom.NewPolygon(layout).MustSetCoords(coordsFromRings(rings, g.Dims))
			mpoly.Push(p)
		}
		return mpoly, nil

	case GeometryCollection:
		gc := ggeom.NewGeometryCollection()
		if g.SRID != nil {
			gc.SetSRID(int(*g.SRID))
		}
		for _, child := range g.CollectionVal {
			ct, err := ToGoGeom(child)
			if err != nil {
				return nil, err
			}
			gc.Push(ct)
		}
		return gc, nil

	default:
		return nil, wkerr.New(wkerr.ErrKindUnknownGeometryType, "cannot convert geometry kind %s to go-geom", g.Kind)
	}
}

func vertexFromFlat(flat []float64, dims Dims) Vertex {
	return VertexFromOrdinates(dims, flat)
}

func ringFromFlat(flat []float64, stride int, dims Dims) Ring {
	n := len(flat) / stride
	out := make(Ring, n)
	for i := 0; i < n; i++ {
		out[i] = VertexFromOrdinates(dims, flat[i*stride:(i+1)*stride])
	}
	return out
}

func ringsFromFlat(flat []float64, ends []int, stride int, dims Dims) []Ring {
	rings := make([]Ring, len(ends))
	start := 0
	for i, end := range ends {
		rings[i] = ringFromFlat(flat[start:end], stride, dims)
		start = end
	}
	return rings
}

// sridOf reads the optional duck-typed SRID() method go-geom's concrete
// types implement, mirroring go_geom.go's own SRID read.
func sridOf(t ggeom.T) *uint32 {
	s, ok := t.(interface{ SRID() int })
	if !ok {
		return nil
	}
	srid := s.SRID()
	if srid == 0 {
		return nil
	}
	v := uint32(srid)
	return &v
}

// FromGoGeom converts a go-geom geom.T back into a Geometry, the inverse of
// ToGoGeom.
func FromGoGeom(t ggeom.T) (*Geometry, error) {
	dims := layoutToDims(t.Layout())
	stride := dims.Stride()
	srid := sridOf(t)

	switch gt := t.(type) {
	case *ggeom.Point:
		return &Geometry{Kind: Point, Dims: dims, SRID: srid, PointVal: vertexFromFlat(gt.FlatCoords(), dims)}, nil

	case *ggeom.LineString:
		return &Geometry{Kind: LineString, Dims: dims, SRID: srid, LineStringVal: ringFromFlat(gt.FlatCoords(), stride, dims)}, nil

	case *ggeom.Polygon:
		return &Geometry{Kind: Polygon, Dims: dims, SRID: srid, PolygonVal: ringsFromFlat(gt.FlatCoords(), gt.Ends(), stride, dims)}, nil

	case *ggeom.MultiPoint:
		return &Geometry{Kind: MultiPoint, Dims: dims, SRID: srid, MultiPointVal: []Vertex(ringFromFlat(gt.FlatCoords(), stride, dims))}, nil

	case *ggeom.MultiLineString:
		lines := make([]Ring, gt.NumLineStrings())
		for i := range lines {
			ls := gt.LineString(i)
			lines[i] = ringFromFlat(ls.FlatCoords(), stride, dims)
		}
		return &Geometry{Kind: MultiLineString, Dims: dims, SRID: srid, MultiLineVal: lines}, nil

	case *ggeom.MultiPolygon:
		polys := make([][]Ring, gt.NumPolygons())
		for i := range polys {
			p := gt.Polygon(i)
			polys[i] = ringsFromFlat(p.FlatCoords(), p.Ends(), stride, dims)
		}
		return &Geometry{Kind: MultiPolygon, Dims: dims, SRID: srid, MultiPolyVal: polys}, nil

	case *ggeom.GeometryCollection:
		children := make([]*Geometry, gt.NumGeoms())
		for i := range children {
			child, err := FromGoGeom(gt.Geom(i))
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return &Geometry{Kind: GeometryCollection, Dims: dims, SRID: srid, CollectionVal: children}, nil

	default:
		return nil, wkerr.New(wkerr.ErrKindUnknownGeometryType, "unsupported go-geom type %T", t)
	}
}
