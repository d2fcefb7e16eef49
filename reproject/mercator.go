package reproject

import (
	"math"

	"github.com/arjuote/wkbparse/wkerr"
)

// projection converts between geographic (lon/lat, degrees) and a
// projected SRID's native coordinates. geographicProjection is the
// identity; every other projection routes through it, so BuiltinFactory
// can chain any two supported SRIDs without an O(n^2) formula table.
type projection interface {
	toGeographic(x, y float64) (lon, lat float64, err error)
	fromGeographic(lon, lat float64) (x, y float64, err error)
}

type geographicProjection struct{}

func (geographicProjection) toGeographic(x, y float64) (float64, float64, error) { return x, y, nil }
func (geographicProjection) fromGeographic(lon, lat float64) (float64, float64, error) {
	return lon, lat, nil
}

// webMercatorProjection is the spherical Web Mercator used by EPSG:3857:
// a closed-form projection, exact (not a series approximation).
type webMercatorProjection struct{}

const earthRadiusMeters = 6378137.0

func (webMercatorProjection) toGeographic(x, y float64) (float64, float64, error) {
	lonRad := x / earthRadiusMeters
	latRad := 2*math.Atan(math.Exp(y/earthRadiusMeters)) - math.Pi/2
	return radToDeg(lonRad), radToDeg(latRad), nil
}

func (webMercatorProjection) fromGeographic(lon, lat float64) (float64, float64, error) {
	if lat <= -90 || lat >= 90 {
		return 0, 0, wkerr.New(wkerr.ErrKindReprojectionFailed, "latitude %f outside web mercator domain", lat)
	}
	x := earthRadiusMeters * degToRad(lon)
	y := earthRadiusMeters * math.Log(math.Tan(math.Pi/4+degToRad(lat)/2))
	return x, y, nil
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
