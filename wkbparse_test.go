package wkbparse_test

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjuote/wkbparse"
	"github.com/arjuote/wkbparse/encoding/geojson"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEWKBToGeoJSONPointZ(t *testing.T) {
	data := mustDecodeHex(t, "0101000080000000000000F03F00000000000000400000000000001040")

	v, err := wkbparse.EWKBToGeoJSON(data)
	require.NoError(t, err)
	require.Equal(t, "Point", v.Type)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Point","coordinates":[1,2,4]}`, string(out))
}

func TestEWKBToGeoJSONPolygonWithSRID(t *testing.T) {
	data := mustDecodeHex(t, "01030000a0e610000001000000070000003333333333f33840295c8fc2f5284e400000000000000840ae47e17a14ee384048e17a14ae274e4000000000000008403333333333f3384048e17a14ae274e4000000000000008407b14ae47e1fa384048e17a14ae274e4000000000000008403d0ad7a370fd3840295c8fc2f5284e4000000000000008407b14ae47e1fa38400ad7a3703d2a4e4000000000000008403333333333f33840295c8fc2f5284e400000000000000840")

	v, err := wkbparse.EWKBToGeoJSON(data)
	require.NoError(t, err)
	require.Equal(t, "Polygon", v.Type)
	require.NotNil(t, v.CRS)
	require.Equal(t, uint32(4326), *v.CRS)
}

func TestTWKBToGeoJSONPoint(t *testing.T) {
	data := mustDecodeHex(t, "610805d00fa01f50")

	v, err := wkbparse.TWKBToGeoJSON(data)
	require.NoError(t, err)
	require.Equal(t, "Point", v.Type)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Point","coordinates":[1,2,4]}`, string(out))
}

func TestGeoJSONToEWKBRoundTrip(t *testing.T) {
	srid := uint32(4326)
	v := geojson.Value{Type: "Point", Coordinates: json.RawMessage(`[1,2,4]`), CRS: &srid}

	data, err := wkbparse.GeoJSONToEWKB(v)
	require.NoError(t, err)

	back, err := wkbparse.EWKBToGeoJSON(data)
	require.NoError(t, err)
	require.Equal(t, "Point", back.Type)
	require.Equal(t, uint32(4326), *back.CRS)
}

func TestEWKBToGeoJSONWithToSRIDReprojectsUsingEmbeddedSRID(t *testing.T) {
	srid := uint32(4326)
	v := geojson.Value{Type: "Point", Coordinates: json.RawMessage(`[1,2,4]`), CRS: &srid}
	data, err := wkbparse.GeoJSONToEWKB(v)
	require.NoError(t, err)

	out, err := wkbparse.EWKBToGeoJSON(data, wkbparse.WithToSRID(3857))
	require.NoError(t, err)
	require.Equal(t, uint32(3857), *out.CRS)

	var coords []float64
	require.NoError(t, json.Unmarshal(out.Coordinates, &coords))
	require.InDelta(t, 111319.491, coords[0], 1e-3)
	require.InDelta(t, 222684.209, coords[1], 1e-3)
	require.Equal(t, 4.0, coords[2])
}

func TestTWKBToGeoJSONWithToSRIDWithoutFromSRIDErrors(t *testing.T) {
	data := mustDecodeHex(t, "610805d00fa01f50")
	_, err := wkbparse.TWKBToGeoJSON(data, wkbparse.WithToSRID(3857))
	require.ErrorIs(t, err, wkbparse.ErrMissingSourceSRID)
}

func TestTWKBToGeoJSONWithFromSRIDAndToSRIDReprojects(t *testing.T) {
	data := mustDecodeHex(t, "610805d00fa01f50")
	v, err := wkbparse.TWKBToGeoJSON(data, wkbparse.WithFromSRID(4326), wkbparse.WithToSRID(3857))
	require.NoError(t, err)
	require.Equal(t, uint32(3857), *v.CRS)
}

func TestReprojectGeoJSONUsesEmbeddedCRSAsSource(t *testing.T) {
	v := geojson.Value{Type: "Point", Coordinates: json.RawMessage(`[24.94,60.17]`)}
	srid := uint32(4326)
	v.CRS = &srid

	out, err := wkbparse.ReprojectGeoJSON(v, 3879)
	require.NoError(t, err)
	require.Equal(t, uint32(3879), *out.CRS)
}

func TestReprojectGeoJSONChain4326To3879To3067To4326(t *testing.T) {
	v := geojson.Value{Type: "Point", Coordinates: json.RawMessage(`[24.94,60.17]`)}

	step1, err := wkbparse.ReprojectGeoJSON(v, 3879, wkbparse.WithFromSRID(4326))
	require.NoError(t, err)

	step2, err := wkbparse.ReprojectGeoJSON(step1, 3067)
	require.NoError(t, err)
	require.Equal(t, uint32(3067), *step2.CRS)

	step3, err := wkbparse.ReprojectGeoJSON(step2, 4326)
	require.NoError(t, err)

	var coords []float64
	require.NoError(t, json.Unmarshal(step3.Coordinates, &coords))
	require.InDelta(t, 24.94, coords[0], 1e-6)
	require.InDelta(t, 60.17, coords[1], 1e-6)
}

func TestReprojectGeoJSONMissingSourceErrors(t *testing.T) {
	v := geojson.Value{Type: "Point", Coordinates: json.RawMessage(`[1,2]`)}
	_, err := wkbparse.ReprojectGeoJSON(v, 3857)
	require.ErrorIs(t, err, wkbparse.ErrMissingSourceSRID)
}

// TestLargeLineStringDecodesFully exercises a genuinely large (>250k vertex)
// LineString without an on-disk fixture, confirming the allocation-bound
// capacity cap does not truncate a legitimately large, honestly-counted
// input.
func TestLargeLineStringDecodesFully(t *testing.T) {
	const n = 250001
	buf := make([]byte, 0, 9+n*16)
	buf = append(buf, 0x01)                   // little endian
	buf = append(buf, 0x02, 0x00, 0x00, 0x00) // LineString
	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, uint32(n))
	buf = append(buf, count...)

	vertex := make([]byte, 16)
	for i := 0; i < n; i++ {
		buf = append(buf, vertex...)
	}

	v, err := wkbparse.EWKBToGeoJSON(buf)
	require.NoError(t, err)
	require.Equal(t, "LineString", v.Type)

	var coords [][]float64
	require.NoError(t, json.Unmarshal(v.Coordinates, &coords))
	require.Len(t, coords, n)
}

// TestLyingVertexCountFailsWithEOFNotPanic verifies a corrupt vertex count
// that vastly overstates what the buffer can supply fails cleanly with an
// EOF error rather than attempting an oversized allocation: the capacity
// cap bounds the up-front allocation to what remains in the buffer, so the
// decoder fails on read, not on alloc.
func TestLyingVertexCountFailsWithEOFNotPanic(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x00, 0x00, 0x00}
	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, 1_000_000_000)
	buf = append(buf, count...)
	buf = append(buf, make([]byte, 160)...) // 10 real vertices' worth

	_, err := wkbparse.EWKBToGeoJSON(buf)
	require.ErrorIs(t, err, wkbparse.ErrUnexpectedEOF)
}
