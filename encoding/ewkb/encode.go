package ewkb

import (
	"bytes"
	"encoding/binary"

	"github.com/arjuote/wkbparse/geom"
	"github.com/arjuote/wkbparse/wkerr"
)

// Encode serializes a Geometry to little-endian EWKB. The SRID flag and
// SRID bytes are emitted only at the outermost message; sub-geometries
// repeat the endian flag and Z/M bits but never SRID_FLAG. Ring closure
// is preserved exactly as given — Encode never closes or opens a ring.
func Encode(g *geom.Geometry) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := encodeMessage(buf, g, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeMessage(buf *bytes.Buffer, g *geom.Geometry, outer bool) error {
	baseType, ok := baseTypeID(g.Kind)
	if !ok {
		return wkerr.New(wkerr.ErrKindUnknownGeometryType, "cannot encode geometry kind %s", g.Kind)
	}

	typeWord := baseType
	if g.Dims.HasZ() {
		typeWord |= zFlag
	}
	if g.Dims.HasM() {
		typeWord |= mFlag
	}
	if outer && g.SRID != nil {
		typeWord |= sridFlag
	}

	buf.WriteByte(1) // little-endian throughout
	if err := binary.Write(buf, binary.LittleEndian, typeWord); err != nil {
		return err
	}
	if outer && g.SRID != nil {
		if err := binary.Write(buf, binary.LittleEndian, *g.SRID); err != nil {
			return err
		}
	}

	switch g.Kind {
	case geom.Point:
		return encodeVertex(buf, g.PointVal, g.Dims)

	case geom.LineString:
		return encodeRing(buf, g.LineStringVal, g.Dims)

	case geom.Polygon:
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(g.PolygonVal))); err != nil {
			return err
		}
		for _, ring := range g.PolygonVal {
			if err := encodeRing(buf, ring, g.Dims); err != nil {
				return err
			}
		}
		return nil

	case geom.MultiPoint:
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(g.MultiPointVal))); err != nil {
			return err
		}
		for _, v := range g.MultiPointVal {
			sub := &geom.Geometry{Kind: geom.Point, Dims: g.Dims, PointVal: v}
			if err := encodeMessage(buf, sub, false); err != nil {
				return err
			}
		}
		return nil

	case geom.MultiLineString:
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(g.MultiLineVal))); err != nil {
			return err
		}
		for _, line := range g.MultiLineVal {
			sub := &geom.Geometry{Kind: geom.LineString, Dims: g.Dims, LineStringVal: line}
			if err := encodeMessage(buf, sub, false); err != nil {
				return err
			}
		}
		return nil

	case geom.MultiPolygon:
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(g.MultiPolyVal))); err != nil {
			return err
		}
		for _, poly := range g.MultiPolyVal {
			sub := &geom.Geometry{Kind: geom.Polygon, Dims: g.Dims, PolygonVal: poly}
			if err := encodeMessage(buf, sub, false); err != nil {
				return err
			}
		}
		return nil

	case geom.GeometryCollection:
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(g.CollectionVal))); err != nil {
			return err
		}
		for _, sub := range g.CollectionVal {
			if err := encodeMessage(buf, sub, false); err != nil {
				return err
			}
		}
		return nil

	default:
		return wkerr.New(wkerr.ErrKindUnknownGeometryType, "cannot encode geometry kind %s", g.Kind)
	}
}

func encodeVertex(buf *bytes.Buffer, v geom.Vertex, dims geom.Dims) error {
	for _, ord := range v.Ordinates(dims) {
		if err := binary.Write(buf, binary.LittleEndian, ord); err != nil {
			return err
		}
	}
	return nil
}

func encodeRing(buf *bytes.Buffer, ring geom.Ring, dims geom.Dims) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(ring))); err != nil {
		return err
	}
	for _, v := range ring {
		if err := encodeVertex(buf, v, dims); err != nil {
			return err
		}
	}
	return nil
}
