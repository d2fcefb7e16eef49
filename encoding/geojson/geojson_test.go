package geojson_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjuote/wkbparse/encoding/geojson"
	"github.com/arjuote/wkbparse/geom"
)

func TestMarshalPointPreservesKeyOrder(t *testing.T) {
	srid := uint32(4326)
	g := &geom.Geometry{Kind: geom.Point, Dims: geom.XYZ, SRID: &srid, PointVal: geom.Vertex{X: 1, Y: 2, Z: 4}}

	v, err := geojson.Marshal(g)
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Point","coordinates":[1,2,4],"crs":4326}`, string(data))

	keys := []string{"type", "coordinates", "crs"}
	idx := 0
	for _, k := range keys {
		pos := strings.Index(string(data), `"`+k+`"`)
		require.GreaterOrEqual(t, pos, idx)
		idx = pos
	}
}

func TestMarshalGeometryCollection(t *testing.T) {
	g := &geom.Geometry{
		Kind: geom.GeometryCollection,
		Dims: geom.XY,
		CollectionVal: []*geom.Geometry{
			{Kind: geom.Point, Dims: geom.XY, PointVal: geom.Vertex{X: 1, Y: 2}},
			{Kind: geom.LineString, Dims: geom.XY, LineStringVal: geom.Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		},
	}

	v, err := geojson.Marshal(g)
	require.NoError(t, err)
	require.Equal(t, "GeometryCollection", v.Type)
	require.Len(t, v.Geometries, 2)
	require.Equal(t, "Point", v.Geometries[0].Type)
	require.Equal(t, "LineString", v.Geometries[1].Type)
}

func TestUnmarshalInfersDimsFromFirstVertex(t *testing.T) {
	v := geojson.Value{Type: "LineString", Coordinates: json.RawMessage(`[[1,2,3],[4,5,6]]`)}
	g, err := geojson.Unmarshal(v)
	require.NoError(t, err)
	require.Equal(t, geom.XYZ, g.Dims)
	require.Len(t, g.LineStringVal, 2)
	require.Equal(t, []float64{1, 2, 3}, g.LineStringVal[0].Ordinates(geom.XYZ))
}

func TestUnmarshalPopulatesSRIDFromCRS(t *testing.T) {
	srid := uint32(3857)
	v := geojson.Value{Type: "Point", Coordinates: json.RawMessage(`[1,2]`), CRS: &srid}
	g, err := geojson.Unmarshal(v)
	require.NoError(t, err)
	require.NotNil(t, g.SRID)
	require.Equal(t, uint32(3857), *g.SRID)
}

func TestUnmarshalRoundTripPolygon(t *testing.T) {
	g := &geom.Geometry{
		Kind: geom.Polygon,
		Dims: geom.XY,
		PolygonVal: []geom.Ring{
			{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}},
		},
	}

	v, err := geojson.Marshal(g)
	require.NoError(t, err)

	g2, err := geojson.Unmarshal(v)
	require.NoError(t, err)
	require.Equal(t, g.PolygonVal, g2.PolygonVal)
}

func TestUnmarshalUnknownTypeIsInvalidGeoJSON(t *testing.T) {
	v := geojson.Value{Type: "Sphere"}
	_, err := geojson.Unmarshal(v)
	require.Error(t, err)
}

func TestUnmarshalBadVertexLengthErrors(t *testing.T) {
	v := geojson.Value{Type: "Point", Coordinates: json.RawMessage(`[1]`)}
	_, err := geojson.Unmarshal(v)
	require.Error(t, err)
}
