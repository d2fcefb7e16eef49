package reproject

import (
	"github.com/arjuote/wkbparse/wkerr"
)

// Ellipsoid parameters for the two reference ellipsoids exercised by the
// builtin SRIDs. grs80A and wgs84A share webMercatorProjection's spherical
// earthRadiusMeters numerically but are kept as distinct constants: one is
// an ellipsoid's equatorial radius, the other the radius of Web Mercator's
// sphere, and conflating the two would blur a deliberately approximate
// model boundary.
const (
	grs80A = 6378137.0
	grs80F = 1 / 298.257222101
	wgs84A = 6378137.0
	wgs84F = 1 / 298.257223563
)

// builtinProjections maps an SRID to the projection BuiltinFactory uses to
// move between it and the geographic (SRID 4326) hub. SRID 3879
// (ETRS-GK25FIN), 3067 (ETRS-TM35FIN) and 32631 (UTM zone 31N) are all
// Transverse Mercator variants distinguished only by their parameters.
var builtinProjections = map[uint32]projection{
	4326:  geographicProjection{},
	3857:  webMercatorProjection{},
	3879:  tmercProjection{a: grs80A, f: grs80F, lon0Deg: 25, k0: 1.0, falseEasting: 25500000},
	3067:  tmercProjection{a: grs80A, f: grs80F, lon0Deg: 27, k0: 0.9996, falseEasting: 500000},
	32631: tmercProjection{a: wgs84A, f: wgs84F, lon0Deg: 3, k0: 0.9996, falseEasting: 500000},
}

// BuiltinFactory is the reference TransformerFactory; the transform math
// itself is deliberately left to the host in the general case. It chains
// any two supported SRIDs through the geographic hub: source -> geographic
// -> destination. Every builtin projection passes Z through unchanged, so
// Is3D always reports false here — see DESIGN.md's Open Question decisions.
type BuiltinFactory struct{}

// NewBuiltinFactory returns a ready-to-use BuiltinFactory. It holds no
// state, so callers may share a single instance freely.
func NewBuiltinFactory() *BuiltinFactory {
	return &BuiltinFactory{}
}

func (f *BuiltinFactory) Transformer(fromSRID, toSRID uint32) (Transformer, error) {
	from, ok := builtinProjections[fromSRID]
	if !ok {
		return nil, wkerr.New(wkerr.ErrKindUnknownSRID, "no builtin projection for SRID %d", fromSRID)
	}
	to, ok := builtinProjections[toSRID]
	if !ok {
		return nil, wkerr.New(wkerr.ErrKindUnknownSRID, "no builtin projection for SRID %d", toSRID)
	}
	return &chainTransformer{from: from, to: to}, nil
}

// chainTransformer maps coordinates from one projection to another via the
// geographic hub, one vertex at a time. Batch size here is whatever
// transformVertices passed in; per-vertex work is unavoidable because each
// projection's forward/inverse series operates on a single lon/lat pair.
type chainTransformer struct {
	from, to projection
}

func (c *chainTransformer) Is3D() bool { return false }

func (c *chainTransformer) Transform2D(xs, ys []float64) ([]float64, []float64, error) {
	n := len(xs)
	outX := make([]float64, n)
	outY := make([]float64, n)
	for i := range xs {
		lon, lat, err := c.from.toGeographic(xs[i], ys[i])
		if err != nil {
			return nil, nil, wkerr.Wrap(wkerr.ErrKindReprojectionFailed, err, "vertex %d to geographic", i)
		}
		x, y, err := c.to.fromGeographic(lon, lat)
		if err != nil {
			return nil, nil, wkerr.Wrap(wkerr.ErrKindReprojectionFailed, err, "vertex %d from geographic", i)
		}
		outX[i] = x
		outY[i] = y
	}
	return outX, outY, nil
}

func (c *chainTransformer) Transform3D(xs, ys, zs []float64) ([]float64, []float64, []float64, error) {
	return nil, nil, nil, wkerr.New(wkerr.ErrKindReprojectionFailed, "builtin transformer is 2D-only, Is3D reports false")
}
