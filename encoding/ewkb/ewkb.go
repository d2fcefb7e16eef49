// Package ewkb implements the PostGIS EWKB grammar: decoding bytes into a
// geom.Geometry and encoding a geom.Geometry back to bytes. Every
// length-prefixed read caps its up-front allocation at what the remaining
// buffer could actually supply, rather than trusting the length field.
//
// Grounded on topos-ai/geoutil's encoding/wkb package (the endian-flag/
// type-word decode loop, the reader/writer composite-interface split)
// extended from plain WKB to EWKB's SRID and Z/M flag bits. gowkb.go adds a
// second, plain-WKB path through github.com/twpayne/go-geom's own
// encoding/wkb and encoding/wkt, for interop with go-geom-based consumers
// that don't speak EWKB's binary SRID extension (see geom/gogeom.go for the
// geom.Geometry <-> go-geom geom.T bridge).
package ewkb

import "github.com/arjuote/wkbparse/geom"

const (
	sridFlag uint32 = 0x20000000
	zFlag    uint32 = 0x80000000
	mFlag    uint32 = 0x40000000
	typeMask uint32 = 0x000000ff
)

const (
	pointID              = 1
	lineStringID         = 2
	polygonID            = 3
	multiPointID         = 4
	multiLineStringID    = 5
	multiPolygonID       = 6
	geometryCollectionID = 7
)

func baseTypeID(k geom.Kind) (uint32, bool) {
	switch k {
	case geom.Point:
		return pointID, true
	case geom.LineString:
		return lineStringID, true
	case geom.Polygon:
		return polygonID, true
	case geom.MultiPoint:
		return multiPointID, true
	case geom.MultiLineString:
		return multiLineStringID, true
	case geom.MultiPolygon:
		return multiPolygonID, true
	case geom.GeometryCollection:
		return geometryCollectionID, true
	default:
		return 0, false
	}
}

// minVertexBytes returns the number of bytes one vertex of the given
// dimensionality occupies, used to bound allocation by what the remaining
// input could actually hold.
func minVertexBytes(dims geom.Dims) int {
	return dims.Stride() * 8
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
