// Package twkb implements the TWKB (Tiny WKB) decoder: a compact,
// delta-varint, scaled-integer encoding with no SRID. Only decoding is
// provided.
//
// Grounded directly on devork/twkb's decoder shape — a running refpoint
// accumulator and per-dimension scale factors carried through ring/line
// loops by a single decoder value, reset only at GeometryCollection child
// boundaries.
package twkb

import (
	"math"

	"github.com/arjuote/wkbparse/geom"
	"github.com/arjuote/wkbparse/internal/cursor"
	"github.com/arjuote/wkbparse/wkerr"
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

const (
	metaBBox              = 1 << 0
	metaSize              = 1 << 1
	metaIDList            = 1 << 2
	metaExtendedPrecision = 1 << 3
	metaEmptyGeometry     = 1 << 4
)

// decoder carries the running per-dimension state for one TWKB geometry
// (and, for Multi* bodies, everything nested under it). A fresh decoder is
// created only when recursing into a GeometryCollection child.
type decoder struct {
	c        *cursor.Cursor
	dims     geom.Dims
	factors  []float64 // divisor applied to the running raw accumulator per dim
	refpoint []int64   // running raw accumulator per dim
}

// Decode parses a complete TWKB message into a Geometry.
func Decode(data []byte) (*geom.Geometry, error) {
	c := cursor.New(data)
	return decodeGeometry(c)
}

func decodeGeometry(c *cursor.Cursor) (*geom.Geometry, error) {
	header, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	baseType := uint32(header & 0x0f)
	precision := zigzagDecodeNibble(int64((header >> 4) & 0x0f))
	scaleXY := math.Pow10(int(precision))

	meta, err := c.Uint8()
	if err != nil {
		return nil, err
	}

	hasZ, hasM := false, false
	zPrecision, mPrecision := 0, 0
	if meta&metaExtendedPrecision != 0 {
		ext, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		hasZ = ext&0x01 != 0
		hasM = ext&0x02 != 0
		zPrecision = int((ext >> 2) & 0x07)
		mPrecision = int((ext >> 5) & 0x07)
	}
	dims := geom.DimsFromFlags(hasZ, hasM)

	if meta&metaSize != 0 {
		if _, err := c.Varint(); err != nil {
			return nil, err
		}
	}

	empty := meta&metaEmptyGeometry != 0

	if meta&metaBBox != 0 && !empty {
		for i := 0; i < 2*dims.Stride(); i++ {
			if _, err := c.SVarint(); err != nil {
				return nil, err
			}
		}
	}

	if meta&metaIDList != 0 && !empty {
		idCount, err := c.Varint()
		if err != nil {
			return nil, err
		}
		for i := uint64(0); i < idCount; i++ {
			if _, err := c.SVarint(); err != nil {
				return nil, err
			}
		}
	}

	d := newDecoder(c, dims, scaleXY, zPrecision, mPrecision)

	switch baseType {
	case pointID:
		return d.decodePoint(empty)
	case lineStringID:
		return d.decodeLineString(empty)
	case polygonID:
		return d.decodePolygon(empty)
	case multiPointID:
		return d.decodeMultiPoint(empty)
	case multiLineStringID:
		return d.decodeMultiLineString(empty)
	case multiPolygonID:
		return d.decodeMultiPolygon(empty)
	case geometryCollectionID:
		return d.decodeCollection(empty)
	default:
		return nil, wkerr.New(wkerr.ErrKindUnknownGeometryType, "twkb type code %d", baseType)
	}
}

func newDecoder(c *cursor.Cursor, dims geom.Dims, scaleXY float64, zPrecision, mPrecision int) *decoder {
	stride := dims.Stride()
	factors := make([]float64, stride)
	factors[0] = scaleXY
	factors[1] = scaleXY
	idx := 2
	if dims.HasZ() {
		factors[idx] = math.Pow10(zPrecision)
		idx++
	}
	if dims.HasM() {
		factors[idx] = math.Pow10(mPrecision)
		idx++
	}
	return &decoder{c: c, dims: dims, factors: factors, refpoint: make([]int64, stride)}
}

func zigzagDecodeNibble(u int64) int64 {
	return (u >> 1) ^ -(u & 1)
}

func (d *decoder) nextVertex() (geom.Vertex, error) {
	ords := make([]float64, d.dims.Stride())
	for i := range ords {
		delta, err := d.c.SVarint()
		if err != nil {
			return geom.Vertex{}, err
		}
		d.refpoint[i] += delta
		ords[i] = float64(d.refpoint[i]) / d.factors[i]
	}
	return geom.VertexFromOrdinates(d.dims, ords), nil
}

func (d *decoder) decodePoint(empty bool) (*geom.Geometry, error) {
	if empty {
		return &geom.Geometry{Kind: geom.Point, Dims: d.dims}, nil
	}
	v, err := d.nextVertex()
	if err != nil {
		return nil, err
	}
	return &geom.Geometry{Kind: geom.Point, Dims: d.dims, PointVal: v}, nil
}

func (d *decoder) decodeLineString(empty bool) (*geom.Geometry, error) {
	if empty {
		return &geom.Geometry{Kind: geom.LineString, Dims: d.dims}, nil
	}
	n, err := d.c.Varint()
	if err != nil {
		return nil, err
	}
	ring, err := d.readVertices(n)
	if err != nil {
		return nil, err
	}
	return &geom.Geometry{Kind: geom.LineString, Dims: d.dims, LineStringVal: ring}, nil
}

// decodePolygon keeps d.refpoint shared across every ring.
func (d *decoder) decodePolygon(empty bool) (*geom.Geometry, error) {
	if empty {
		return &geom.Geometry{Kind: geom.Polygon, Dims: d.dims}, nil
	}
	nRings, err := d.c.Varint()
	if err != nil {
		return nil, err
	}
	rings := make([]geom.Ring, 0, minUint64(nRings, uint64(d.c.Remaining())))
	for i := uint64(0); i < nRings; i++ {
		nPoints, err := d.c.Varint()
		if err != nil {
			return nil, err
		}
		ring, err := d.readVertices(nPoints)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}
	return &geom.Geometry{Kind: geom.Polygon, Dims: d.dims, PolygonVal: rings}, nil
}

// decodeMultiPoint keeps d.refpoint shared across the whole point list.
func (d *decoder) decodeMultiPoint(empty bool) (*geom.Geometry, error) {
	if empty {
		return &geom.Geometry{Kind: geom.MultiPoint, Dims: d.dims}, nil
	}
	n, err := d.c.Varint()
	if err != nil {
		return nil, err
	}
	verts, err := d.readVertices(n)
	if err != nil {
		return nil, err
	}
	return &geom.Geometry{Kind: geom.MultiPoint, Dims: d.dims, MultiPointVal: []geom.Vertex(verts)}, nil
}

// decodeMultiLineString keeps d.refpoint shared across every line.
func (d *decoder) decodeMultiLineString(empty bool) (*geom.Geometry, error) {
	if empty {
		return &geom.Geometry{Kind: geom.MultiLineString, Dims: d.dims}, nil
	}
	nLines, err := d.c.Varint()
	if err != nil {
		return nil, err
	}
	lines := make([]geom.Ring, 0, minUint64(nLines, uint64(d.c.Remaining())))
	for i := uint64(0); i < nLines; i++ {
		nPoints, err := d.c.Varint()
		if err != nil {
			return nil, err
		}
		line, err := d.readVertices(nPoints)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return &geom.Geometry{Kind: geom.MultiLineString, Dims: d.dims, MultiLineVal: lines}, nil
}

// decodeMultiPolygon keeps d.refpoint shared across the entire multipolygon.
func (d *decoder) decodeMultiPolygon(empty bool) (*geom.Geometry, error) {
	if empty {
		return &geom.Geometry{Kind: geom.MultiPolygon, Dims: d.dims}, nil
	}
	nPolys, err := d.c.Varint()
	if err != nil {
		return nil, err
	}
	polys := make([][]geom.Ring, 0, minUint64(nPolys, uint64(d.c.Remaining())))
	for p := uint64(0); p < nPolys; p++ {
		nRings, err := d.c.Varint()
		if err != nil {
			return nil, err
		}
		rings := make([]geom.Ring, 0, minUint64(nRings, uint64(d.c.Remaining())))
		for i := uint64(0); i < nRings; i++ {
			nPoints, err := d.c.Varint()
			if err != nil {
				return nil, err
			}
			ring, err := d.readVertices(nPoints)
			if err != nil {
				return nil, err
			}
			rings = append(rings, ring)
		}
		polys = append(polys, rings)
	}
	return &geom.Geometry{Kind: geom.MultiPolygon, Dims: d.dims, MultiPolyVal: polys}, nil
}

// decodeCollection gives each child its own decoder (and thus its own
// fresh refpoint), per the "reset only at GeometryCollection child
// boundaries" rule.
func (d *decoder) decodeCollection(empty bool) (*geom.Geometry, error) {
	if empty {
		return &geom.Geometry{Kind: geom.GeometryCollection, Dims: d.dims}, nil
	}
	n, err := d.c.Varint()
	if err != nil {
		return nil, err
	}
	children := make([]*geom.Geometry, 0, minUint64(n, uint64(d.c.Remaining())))
	for i := uint64(0); i < n; i++ {
		child, err := decodeGeometry(d.c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return &geom.Geometry{Kind: geom.GeometryCollection, Dims: d.dims, CollectionVal: children}, nil
}

func (d *decoder) readVertices(n uint64) (geom.Ring, error) {
	ring := make(geom.Ring, 0, minUint64(n, uint64(d.c.Remaining())))
	for i := uint64(0); i < n; i++ {
		v, err := d.nextVertex()
		if err != nil {
			return nil, err
		}
		ring = append(ring, v)
	}
	return ring, nil
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
