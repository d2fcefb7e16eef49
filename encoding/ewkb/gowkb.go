package ewkb

import (
	"strconv"
	"strings"

	ggeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/arjuote/wkbparse/geom"
	"github.com/arjuote/wkbparse/wkerr"
)

// EncodePlainWKB serializes g through go-geom's own WKB encoder rather than
// this package's EWKB writer. Unlike Encode, the result never carries an
// SRID byte: go-geom's wkb package has no binary SRID extension, matching
// how PostGIS tooling built on go-geom carries SRID out of band instead
// (see DecodeWKT's "SRID=%d;..." prefix handling).
func EncodePlainWKB(g *geom.Geometry) ([]byte, error) {
	t, err := geom.ToGoGeom(g)
	if err != nil {
		return nil, err
	}
	b, err := wkb.Marshal(t, nil)
	if err != nil {
		return nil, wkerr.Wrap(wkerr.ErrKindUnknownGeometryType, err, "go-geom wkb marshal")
	}
	return b, nil
}

// DecodePlainWKB parses plain (non-extended) WKB via go-geom's decoder and
// converts the result back into a Geometry. The returned Geometry never
// carries an SRID, since plain WKB has none to carry.
func DecodePlainWKB(data []byte) (*geom.Geometry, error) {
	t, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, wkerr.Wrap(wkerr.ErrKindUnexpectedEOF, err, "go-geom wkb unmarshal")
	}
	return geom.FromGoGeom(t)
}

// DecodeWKT parses a WKT string via go-geom's encoding/wkt decoder. An
// EWKT "SRID=%d;..." prefix is stripped before parsing (go-geom's wkt
// decoder does not understand it) and the SRID is reattached to the
// decoded value afterward, mirroring connected-systems-go's GoGeom.Scan.
func DecodeWKT(s string) (*geom.Geometry, error) {
	srid, rest := stripSRIDPrefix(s)

	t, err := wkt.Unmarshal(rest)
	if err != nil {
		return nil, wkerr.Wrap(wkerr.ErrKindUnexpectedEOF, err, "go-geom wkt unmarshal")
	}
	if srid != 0 {
		setSRID(t, srid)
	}
	return geom.FromGoGeom(t)
}

// stripSRIDPrefix splits an optional "SRID=%d;" prefix off s, returning the
// parsed SRID (0 if absent or malformed) and the remaining WKT text.
func stripSRIDPrefix(s string) (int, string) {
	if !strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		return 0, s
	}
	idx := strings.Index(s, ";")
	if idx == -1 {
		return 0, s
	}
	srid, err := strconv.Atoi(s[len("SRID="):idx])
	if err != nil {
		return 0, s
	}
	return srid, s[idx+1:]
}

func setSRID(t ggeom.T, srid int) {
	switch gt := t.(type) {
	case *ggeom.Point:
		gt.SetSRID(srid)
	case *ggeom.LineString:
		gt.SetSRID(srid)
	case *ggeom.Polygon:
		gt.SetSRID(srid)
	case *ggeom.MultiPoint:
		gt.SetSRID(srid)
	case *ggeom.MultiLineString:
		gt.SetSRID(srid)
	case *ggeom.MultiPolygon:
		gt.SetSRID(srid)
	case *ggeom.GeometryCollection:
		gt.SetSRID(srid)
	}
}
