// Package wkbparse decodes EWKB and TWKB geometries, marshals them to and
// from the GeoJSON value shape, and reprojects them between spatial
// reference systems. It wires together internal/cursor, geom,
// encoding/ewkb, encoding/twkb, encoding/geojson and reproject behind four
// package-level operations.
package wkbparse

import (
	"github.com/arjuote/wkbparse/encoding/ewkb"
	"github.com/arjuote/wkbparse/encoding/geojson"
	"github.com/arjuote/wkbparse/encoding/twkb"
	"github.com/arjuote/wkbparse/geom"
	"github.com/arjuote/wkbparse/reproject"
	"github.com/arjuote/wkbparse/wkerr"
)

// Re-exported so callers never need to import wkerr directly.
type Error = wkerr.Error
type ErrorKind = wkerr.ErrorKind

var (
	ErrUnexpectedEOF          = wkerr.ErrUnexpectedEOF
	ErrVarintOverflow         = wkerr.ErrVarintOverflow
	ErrUnknownEndianFlag      = wkerr.ErrUnknownEndianFlag
	ErrUnknownGeometryType    = wkerr.ErrUnknownGeometryType
	ErrInconsistentDimensions = wkerr.ErrInconsistentDimensions
	ErrUnexpectedSubGeometry  = wkerr.ErrUnexpectedSubGeometry
	ErrInvalidGeoJSON         = wkerr.ErrInvalidGeoJSON
	ErrUnknownSRID            = wkerr.ErrUnknownSRID
	ErrMissingSourceSRID      = wkerr.ErrMissingSourceSRID
	ErrReprojectionFailed     = wkerr.ErrReprojectionFailed
)

// defaultFactory backs every reprojection performed by the package-level
// operations below. It caches up to 32 transformers over BuiltinFactory,
// the reference Web Mercator / Transverse Mercator implementation; a host
// needing a different backend uses the reproject package directly.
var defaultFactory = reproject.NewLRUTransformerFactory(reproject.NewBuiltinFactory(), 32, nil)

// reprojectOptions holds the resolved state of a ReprojectOption chain.
type reprojectOptions struct {
	fromSRID *uint32
	toSRID   *uint32
}

// ReprojectOption overrides SRID resolution on EWKBToGeoJSON,
// TWKBToGeoJSON, and ReprojectGeoJSON.
type ReprojectOption func(*reprojectOptions)

// WithFromSRID overrides the source SRID, taking precedence over any SRID
// embedded in the input.
func WithFromSRID(srid uint32) ReprojectOption {
	return func(o *reprojectOptions) { o.fromSRID = &srid }
}

// WithToSRID requests reprojection to srid. Without it, no reprojection is
// performed and the output carries whatever SRID the input carried.
func WithToSRID(srid uint32) ReprojectOption {
	return func(o *reprojectOptions) { o.toSRID = &srid }
}

func resolveOptions(opts []ReprojectOption) reprojectOptions {
	var o reprojectOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// maybeReproject reprojects g to o.toSRID if requested, resolving the
// source SRID from o.fromSRID or else g.SRID. It is a no-op if o.toSRID is
// unset.
func maybeReproject(g *geom.Geometry, o reprojectOptions) (*geom.Geometry, error) {
	if o.toSRID == nil {
		return g, nil
	}

	fromSRID, err := resolveFromSRID(o.fromSRID, g.SRID)
	if err != nil {
		return nil, err
	}

	return reproject.Reproject(g, fromSRID, *o.toSRID, defaultFactory)
}

func resolveFromSRID(override, embedded *uint32) (uint32, error) {
	if override != nil {
		return *override, nil
	}
	if embedded != nil {
		return *embedded, nil
	}
	return 0, wkerr.New(wkerr.ErrKindMissingSourceSRID, "no from_srid override and input carries no SRID")
}

// EWKBToGeoJSON decodes an EWKB byte string into a GeoJSON value,
// optionally reprojecting it first. The embedded SRID, if any, is used as
// the default reprojection source and always used as the output's "crs"
// absent a WithToSRID override.
func EWKBToGeoJSON(data []byte, opts ...ReprojectOption) (geojson.Value, error) {
	g, err := ewkb.Decode(data)
	if err != nil {
		return geojson.Value{}, err
	}

	o := resolveOptions(opts)
	g, err = maybeReproject(g, o)
	if err != nil {
		return geojson.Value{}, err
	}

	return geojson.Marshal(g)
}

// TWKBToGeoJSON decodes a TWKB byte string into a GeoJSON value. TWKB
// carries no SRID, so reprojection requires WithFromSRID (or WithToSRID
// alone returns ErrMissingSourceSRID).
func TWKBToGeoJSON(data []byte, opts ...ReprojectOption) (geojson.Value, error) {
	g, err := twkb.Decode(data)
	if err != nil {
		return geojson.Value{}, err
	}

	o := resolveOptions(opts)
	g, err = maybeReproject(g, o)
	if err != nil {
		return geojson.Value{}, err
	}

	return geojson.Marshal(g)
}

// GeoJSONToEWKB marshals a GeoJSON value into EWKB bytes, carrying through
// any "crs" present on v as the encoded SRID.
func GeoJSONToEWKB(v geojson.Value) ([]byte, error) {
	g, err := geojson.Unmarshal(v)
	if err != nil {
		return nil, err
	}
	return ewkb.Encode(g)
}

// ReprojectGeoJSON reprojects a GeoJSON value to toSRID. The source SRID
// comes from WithFromSRID if given, else from v's "crs" field; if neither
// is present, ErrMissingSourceSRID is returned.
func ReprojectGeoJSON(v geojson.Value, toSRID uint32, opts ...ReprojectOption) (geojson.Value, error) {
	g, err := geojson.Unmarshal(v)
	if err != nil {
		return geojson.Value{}, err
	}

	o := resolveOptions(opts)
	fromSRID, err := resolveFromSRID(o.fromSRID, g.SRID)
	if err != nil {
		return geojson.Value{}, err
	}

	out, err := reproject.Reproject(g, fromSRID, toSRID, defaultFactory)
	if err != nil {
		return geojson.Value{}, err
	}

	return geojson.Marshal(out)
}
