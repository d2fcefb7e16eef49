package ewkb

import (
	"encoding/binary"

	"github.com/arjuote/wkbparse/geom"
	"github.com/arjuote/wkbparse/internal/cursor"
	"github.com/arjuote/wkbparse/wkerr"
)

// Decode parses a complete EWKB message into a Geometry.
func Decode(data []byte) (*geom.Geometry, error) {
	c := cursor.New(data)
	g, _, err := decodeMessage(c, nil)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// decodeMessage reads one EWKB message (endian flag, type word, optional
// SRID, body). outerDims is nil at the outermost call and non-nil when
// decoding a sub-geometry of a MultiXxx/GeometryCollection, in which case
// the sub-geometry's dims are validated against it and its SRID (if any)
// is discarded rather than attached. It returns the decoded geometry and
// its base type code, so the caller can validate container element types.
func decodeMessage(c *cursor.Cursor, outerDims *geom.Dims) (*geom.Geometry, uint32, error) {
	endianByte, err := c.Uint8()
	if err != nil {
		return nil, 0, err
	}

	var order binary.ByteOrder
	switch endianByte {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return nil, 0, wkerr.New(wkerr.ErrKindUnknownEndianFlag, "endian flag %d at offset %d", endianByte, c.Pos())
	}

	typeWord, err := c.Uint32(order)
	if err != nil {
		return nil, 0, err
	}

	baseType := typeWord & typeMask
	hasSRID := typeWord&sridFlag != 0
	hasZ := typeWord&zFlag != 0
	hasM := typeWord&mFlag != 0
	dims := geom.DimsFromFlags(hasZ, hasM)

	var srid *uint32
	if hasSRID {
		s, err := c.Uint32(order)
		if err != nil {
			return nil, 0, err
		}
		if outerDims == nil {
			srid = &s
		}
		// Sub-geometry SRID: consumed above, discarded.
	}

	if outerDims != nil && dims != *outerDims {
		return nil, 0, wkerr.New(wkerr.ErrKindInconsistentDimensions, "sub-geometry dims %s != outer %s", dims, *outerDims)
	}

	g, err := decodeBody(c, order, dims, baseType)
	if err != nil {
		return nil, 0, err
	}
	if srid != nil {
		g = g.WithSRID(*srid)
	}
	return g, baseType, nil
}

func decodeBody(c *cursor.Cursor, order binary.ByteOrder, dims geom.Dims, baseType uint32) (*geom.Geometry, error) {
	switch baseType {
	case pointID:
		v, err := decodeVertex(c, order, dims)
		if err != nil {
			return nil, err
		}
		return &geom.Geometry{Kind: geom.Point, Dims: dims, PointVal: v}, nil

	case lineStringID:
		ring, err := decodeRing(c, order, dims)
		if err != nil {
			return nil, err
		}
		return &geom.Geometry{Kind: geom.LineString, Dims: dims, LineStringVal: ring}, nil

	case polygonID:
		rings, err := decodeRings(c, order, dims)
		if err != nil {
			return nil, err
		}
		return &geom.Geometry{Kind: geom.Polygon, Dims: dims, PolygonVal: rings}, nil

	case multiPointID:
		n, err := c.Uint32(order)
		if err != nil {
			return nil, err
		}
		points := make([]geom.Vertex, 0, minInt(int(n), c.Remaining()))
		for i := uint32(0); i < n; i++ {
			sub, subType, err := decodeMessage(c, &dims)
			if err != nil {
				return nil, err
			}
			if subType != pointID {
				return nil, wkerr.New(wkerr.ErrKindUnexpectedSubGeometry, "MultiPoint element %d has type %d", i, subType)
			}
			points = append(points, sub.PointVal)
		}
		return &geom.Geometry{Kind: geom.MultiPoint, Dims: dims, MultiPointVal: points}, nil

	case multiLineStringID:
		n, err := c.Uint32(order)
		if err != nil {
			return nil, err
		}
		lines := make([]geom.Ring, 0, minInt(int(n), c.Remaining()))
		for i := uint32(0); i < n; i++ {
			sub, subType, err := decodeMessage(c, &dims)
			if err != nil {
				return nil, err
			}
			if subType != lineStringID {
				return nil, wkerr.New(wkerr.ErrKindUnexpectedSubGeometry, "MultiLineString element %d has type %d", i, subType)
			}
			lines = append(lines, sub.LineStringVal)
		}
		return &geom.Geometry{Kind: geom.MultiLineString, Dims: dims, MultiLineVal: lines}, nil

	case multiPolygonID:
		n, err := c.Uint32(order)
		if err != nil {
			return nil, err
		}
		polys := make([][]geom.Ring, 0, minInt(int(n), c.Remaining()))
		for i := uint32(0); i < n; i++ {
			sub, subType, err := decodeMessage(c, &dims)
			if err != nil {
				return nil, err
			}
			if subType != polygonID {
				return nil, wkerr.New(wkerr.ErrKindUnexpectedSubGeometry, "MultiPolygon element %d has type %d", i, subType)
			}
			polys = append(polys, sub.PolygonVal)
		}
		return &geom.Geometry{Kind: geom.MultiPolygon, Dims: dims, MultiPolyVal: polys}, nil

	case geometryCollectionID:
		n, err := c.Uint32(order)
		if err != nil {
			return nil, err
		}
		geoms := make([]*geom.Geometry, 0, minInt(int(n), c.Remaining()))
		for i := uint32(0); i < n; i++ {
			sub, _, err := decodeMessage(c, &dims)
			if err != nil {
				return nil, err
			}
			geoms = append(geoms, sub)
		}
		return &geom.Geometry{Kind: geom.GeometryCollection, Dims: dims, CollectionVal: geoms}, nil

	default:
		return nil, wkerr.New(wkerr.ErrKindUnknownGeometryType, "type code %d", baseType)
	}
}

func decodeVertex(c *cursor.Cursor, order binary.ByteOrder, dims geom.Dims) (geom.Vertex, error) {
	stride := dims.Stride()
	ords := make([]float64, stride)
	for i := 0; i < stride; i++ {
		v, err := c.Float64(order)
		if err != nil {
			return geom.Vertex{}, err
		}
		ords[i] = v
	}
	return geom.VertexFromOrdinates(dims, ords), nil
}

func decodeRing(c *cursor.Cursor, order binary.ByteOrder, dims geom.Dims) (geom.Ring, error) {
	n, err := c.Uint32(order)
	if err != nil {
		return nil, err
	}
	ring := make(geom.Ring, 0, minInt(int(n), c.Remaining()/minVertexBytes(dims)))
	for i := uint32(0); i < n; i++ {
		v, err := decodeVertex(c, order, dims)
		if err != nil {
			return nil, err
		}
		ring = append(ring, v)
	}
	return ring, nil
}

func decodeRings(c *cursor.Cursor, order binary.ByteOrder, dims geom.Dims) ([]geom.Ring, error) {
	n, err := c.Uint32(order)
	if err != nil {
		return nil, err
	}
	rings := make([]geom.Ring, 0, minInt(int(n), c.Remaining()))
	for i := uint32(0); i < n; i++ {
		ring, err := decodeRing(c, order, dims)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}
	return rings, nil
}
