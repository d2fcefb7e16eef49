package geom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjuote/wkbparse/geom"
)

func TestToFromGoGeomPointRoundTrip(t *testing.T) {
	srid := uint32(4326)
	g := &geom.Geometry{Kind: geom.Point, Dims: geom.XYZ, SRID: &srid, PointVal: geom.Vertex{X: 1, Y: 2, Z: 3}}

	t1, err := geom.ToGoGeom(g)
	require.NoError(t, err)

	back, err := geom.FromGoGeom(t1)
	require.NoError(t, err)
	require.Equal(t, g.Kind, back.Kind)
	require.Equal(t, g.Dims, back.Dims)
	require.NotNil(t, back.SRID)
	require.Equal(t, *g.SRID, *back.SRID)
	require.Equal(t, g.PointVal, back.PointVal)
}

func TestToFromGoGeomPolygonRoundTrip(t *testing.T) {
	g := &geom.Geometry{
		Kind: geom.Polygon,
		Dims: geom.XY,
		PolygonVal: []geom.Ring{
			{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 0}},
			{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1}},
		},
	}

	t1, err := geom.ToGoGeom(g)
	require.NoError(t, err)

	back, err := geom.FromGoGeom(t1)
	require.NoError(t, err)
	require.Equal(t, geom.Polygon, back.Kind)
	require.Len(t, back.PolygonVal, 2)
	require.Equal(t, g.PolygonVal[0], back.PolygonVal[0])
	require.Equal(t, g.PolygonVal[1], back.PolygonVal[1])
}

func TestToFromGoGeomMultiPolygonRoundTrip(t *testing.T) {
	g := &geom.Geometry{
		Kind: geom.MultiPolygon,
		Dims: geom.XY,
		MultiPolyVal: [][]geom.Ring{
			{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}},
			{{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 5}}},
		},
	}

	t1, err := geom.ToGoGeom(g)
	require.NoError(t, err)

	back, err := geom.FromGoGeom(t1)
	require.NoError(t, err)
	require.Equal(t, geom.MultiPolygon, back.Kind)
	require.Len(t, back.MultiPolyVal, 2)
	require.Equal(t, g.MultiPolyVal, back.MultiPolyVal)
}

func TestToFromGoGeomGeometryCollectionRoundTrip(t *testing.T) {
	g := &geom.Geometry{
		Kind: geom.GeometryCollection,
		Dims: geom.XY,
		CollectionVal: []*geom.Geometry{
			{Kind: geom.Point, Dims: geom.XY, PointVal: geom.Vertex{X: 1, Y: 2}},
			{Kind: geom.LineString, Dims: geom.XY, LineStringVal: geom.Ring{{X: 1, Y: 1}, {X: 2, Y: 2}}},
		},
	}

	t1, err := geom.ToGoGeom(g)
	require.NoError(t, err)

	back, err := geom.FromGoGeom(t1)
	require.NoError(t, err)
	require.Equal(t, geom.GeometryCollection, back.Kind)
	require.Len(t, back.CollectionVal, 2)
	require.Equal(t, geom.Point, back.CollectionVal[0].Kind)
	require.Equal(t, geom.LineString, back.CollectionVal[1].Kind)
}

func TestToGoGeomUnknownKindErrors(t *testing.T) {
	g := &geom.Geometry{Kind: geom.Kind(99), Dims: geom.XY}
	_, err := geom.ToGoGeom(g)
	require.Error(t, err)
}
