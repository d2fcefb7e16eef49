// Package geojson marshals geom.Geometry to and from the GeoJSON value
// shape used by wkbparse's public API.
//
// Grounded on topos-ai/geoutil's encoding/geojson package: the same
// rawGeometry{Type string; Coordinates json.RawMessage} idiom, chosen
// because Go's map[string]interface{} sorts keys on Marshal, which would
// violate the "MUST NOT re-order keys" requirement, while a struct with
// declared field order does not.
package geojson

import (
	"encoding/json"

	"github.com/arjuote/wkbparse/geom"
	"github.com/arjuote/wkbparse/wkerr"
)

// Value is the GeoJSON value tree produced by Marshal and consumed by
// Unmarshal. Coordinates holds the raw "coordinates" array for every type
// except GeometryCollection, which instead populates Geometries.
type Value struct {
	Type        string
	Coordinates json.RawMessage
	Geometries  []Value
	CRS         *uint32
}

type rawValue struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  json.RawMessage `json:"geometries,omitempty"`
	CRS         *uint32         `json:"crs,omitempty"`
}

// MarshalJSON preserves "type" before "coordinates"/"geometries" before
// "crs" — field declaration order, not a sorted map.
func (v Value) MarshalJSON() ([]byte, error) {
	rv := rawValue{Type: v.Type, CRS: v.CRS}
	if v.Type == "GeometryCollection" {
		data, err := json.Marshal(v.Geometries)
		if err != nil {
			return nil, err
		}
		rv.Geometries = data
	} else {
		rv.Coordinates = v.Coordinates
	}
	return json.Marshal(rv)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var rv rawValue
	if err := json.Unmarshal(data, &rv); err != nil {
		return wkerr.Wrap(wkerr.ErrKindInvalidGeoJSON, err, "decoding geojson value")
	}
	if rv.Type == "" {
		return wkerr.New(wkerr.ErrKindInvalidGeoJSON, "missing \"type\"")
	}
	v.Type = rv.Type
	v.CRS = rv.CRS
	if rv.Type == "GeometryCollection" {
		if len(rv.Geometries) > 0 {
			if err := json.Unmarshal(rv.Geometries, &v.Geometries); err != nil {
				return wkerr.Wrap(wkerr.ErrKindInvalidGeoJSON, err, "decoding geometries")
			}
		}
	} else {
		v.Coordinates = rv.Coordinates
	}
	return nil
}

// Marshal converts a decoded Geometry into its GeoJSON Value shape.
func Marshal(g *geom.Geometry) (Value, error) {
	v := Value{CRS: g.SRID}

	switch g.Kind {
	case geom.Point:
		v.Type = "Point"
		data, err := json.Marshal(g.PointVal.Ordinates(g.Dims))
		if err != nil {
			return Value{}, err
		}
		v.Coordinates = data

	case geom.LineString:
		v.Type = "LineString"
		data, err := json.Marshal(ringOrdinates(g.LineStringVal, g.Dims))
		if err != nil {
			return Value{}, err
		}
		v.Coordinates = data

	case geom.Polygon:
		v.Type = "Polygon"
		coords := make([][][]float64, len(g.PolygonVal))
		for i, ring := range g.PolygonVal {
			coords[i] = ringOrdinates(ring, g.Dims)
		}
		data, err := json.Marshal(coords)
		if err != nil {
			return Value{}, err
		}
		v.Coordinates = data

	case geom.MultiPoint:
		v.Type = "MultiPoint"
		data, err := json.Marshal(ringOrdinates(geom.Ring(g.MultiPointVal), g.Dims))
		if err != nil {
			return Value{}, err
		}
		v.Coordinates = data

	case geom.MultiLineString:
		v.Type = "MultiLineString"
		coords := make([][][]float64, len(g.MultiLineVal))
		for i, line := range g.MultiLineVal {
			coords[i] = ringOrdinates(line, g.Dims)
		}
		data, err := json.Marshal(coords)
		if err != nil {
			return Value{}, err
		}
		v.Coordinates = data

	case geom.MultiPolygon:
		v.Type = "MultiPolygon"
		coords := make([][][][]float64, len(g.MultiPolyVal))
		for i, poly := range g.MultiPolyVal {
			rings := make([][][]float64, len(poly))
			for j, ring := range poly {
				rings[j] = ringOrdinates(ring, g.Dims)
			}
			coords[i] = rings
		}
		data, err := json.Marshal(coords)
		if err != nil {
			return Value{}, err
		}
		v.Coordinates = data

	case geom.GeometryCollection:
		v.Type = "GeometryCollection"
		geoms := make([]Value, len(g.CollectionVal))
		for i, sub := range g.CollectionVal {
			sv, err := Marshal(sub)
			if err != nil {
				return Value{}, err
			}
			geoms[i] = sv
		}
		v.Geometries = geoms

	default:
		return Value{}, wkerr.New(wkerr.ErrKindInvalidGeoJSON, "cannot marshal geometry kind %s", g.Kind)
	}

	return v, nil
}

// Unmarshal converts a GeoJSON Value back into a Geometry, inferring
// dimensionality from the length of the first vertex (2->XY, 3->XYZ,
// 4->XYZM) and populating SRID from v.CRS.
func Unmarshal(v Value) (*geom.Geometry, error) {
	switch v.Type {
	case "Point":
		ords, err := decodeOrdinates(v.Coordinates)
		if err != nil {
			return nil, err
		}
		dims, err := dimsFromLen(len(ords))
		if err != nil {
			return nil, err
		}
		g := &geom.Geometry{Kind: geom.Point, Dims: dims, PointVal: geom.VertexFromOrdinates(dims, ords)}
		return withCRS(g, v.CRS), nil

	case "LineString":
		ring, dims, err := decodeRing(v.Coordinates)
		if err != nil {
			return nil, err
		}
		g := &geom.Geometry{Kind: geom.LineString, Dims: dims, LineStringVal: ring}
		return withCRS(g, v.CRS), nil

	case "Polygon":
		var raw [][][]float64
		if err := json.Unmarshal(v.Coordinates, &raw); err != nil {
			return nil, wkerr.Wrap(wkerr.ErrKindInvalidGeoJSON, err, "decoding Polygon coordinates")
		}
		rings, dims, err := decodeRings(raw)
		if err != nil {
			return nil, err
		}
		g := &geom.Geometry{Kind: geom.Polygon, Dims: dims, PolygonVal: rings}
		return withCRS(g, v.CRS), nil

	case "MultiPoint":
		ring, dims, err := decodeRing(v.Coordinates)
		if err != nil {
			return nil, err
		}
		g := &geom.Geometry{Kind: geom.MultiPoint, Dims: dims, MultiPointVal: []geom.Vertex(ring)}
		return withCRS(g, v.CRS), nil

	case "MultiLineString":
		var raw [][][]float64
		if err := json.Unmarshal(v.Coordinates, &raw); err != nil {
			return nil, wkerr.Wrap(wkerr.ErrKindInvalidGeoJSON, err, "decoding MultiLineString coordinates")
		}
		lines, dims, err := decodeRings(raw)
		if err != nil {
			return nil, err
		}
		g := &geom.Geometry{Kind: geom.MultiLineString, Dims: dims, MultiLineVal: lines}
		return withCRS(g, v.CRS), nil

	case "MultiPolygon":
		var raw [][][][]float64
		if err := json.Unmarshal(v.Coordinates, &raw); err != nil {
			return nil, wkerr.Wrap(wkerr.ErrKindInvalidGeoJSON, err, "decoding MultiPolygon coordinates")
		}
		dims := geom.XY
		polys := make([][]geom.Ring, len(raw))
		for i, polyRaw := range raw {
			rings, d, err := decodeRings(polyRaw)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				dims = d
			}
			polys[i] = rings
		}
		g := &geom.Geometry{Kind: geom.MultiPolygon, Dims: dims, MultiPolyVal: polys}
		return withCRS(g, v.CRS), nil

	case "GeometryCollection":
		children := make([]*geom.Geometry, len(v.Geometries))
		for i, sv := range v.Geometries {
			child, err := Unmarshal(sv)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		dims := geom.XY
		if len(children) > 0 {
			dims = children[0].Dims
		}
		g := &geom.Geometry{Kind: geom.GeometryCollection, Dims: dims, CollectionVal: children}
		return withCRS(g, v.CRS), nil

	default:
		return nil, wkerr.New(wkerr.ErrKindInvalidGeoJSON, "unknown geometry type %q", v.Type)
	}
}

func ringOrdinates(ring geom.Ring, dims geom.Dims) [][]float64 {
	out := make([][]float64, len(ring))
	for i, v := range ring {
		out[i] = v.Ordinates(dims)
	}
	return out
}

func decodeOrdinates(raw json.RawMessage) ([]float64, error) {
	var ords []float64
	if err := json.Unmarshal(raw, &ords); err != nil {
		return nil, wkerr.Wrap(wkerr.ErrKindInvalidGeoJSON, err, "decoding coordinate tuple")
	}
	return ords, nil
}

func decodeRing(raw json.RawMessage) (geom.Ring, geom.Dims, error) {
	var rawOrds [][]float64
	if err := json.Unmarshal(raw, &rawOrds); err != nil {
		return nil, 0, wkerr.Wrap(wkerr.ErrKindInvalidGeoJSON, err, "decoding coordinate array")
	}
	if len(rawOrds) == 0 {
		return geom.Ring{}, geom.XY, nil
	}
	dims, err := dimsFromLen(len(rawOrds[0]))
	if err != nil {
		return nil, 0, err
	}
	ring := make(geom.Ring, len(rawOrds))
	for i, ords := range rawOrds {
		ring[i] = geom.VertexFromOrdinates(dims, ords)
	}
	return ring, dims, nil
}

func decodeRings(raw [][][]float64) ([]geom.Ring, geom.Dims, error) {
	dims := geom.XY
	rings := make([]geom.Ring, len(raw))
	for i, rawRing := range raw {
		if len(rawRing) == 0 {
			rings[i] = geom.Ring{}
			continue
		}
		d, err := dimsFromLen(len(rawRing[0]))
		if err != nil {
			return nil, 0, err
		}
		if i == 0 {
			dims = d
		}
		ring := make(geom.Ring, len(rawRing))
		for j, ords := range rawRing {
			ring[j] = geom.VertexFromOrdinates(d, ords)
		}
		rings[i] = ring
	}
	return rings, dims, nil
}

func dimsFromLen(n int) (geom.Dims, error) {
	switch n {
	case 2:
		return geom.XY, nil
	case 3:
		return geom.XYZ, nil
	case 4:
		return geom.XYZM, nil
	default:
		return 0, wkerr.New(wkerr.ErrKindInvalidGeoJSON, "vertex with %d ordinates", n)
	}
}

func withCRS(g *geom.Geometry, crs *uint32) *geom.Geometry {
	if crs != nil {
		return g.WithSRID(*crs)
	}
	return g
}
