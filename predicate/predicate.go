// Package predicate implements the exact geometric predicates the CDT
// relies on for correctness: orient2d, incircle, and the acute-angle and
// pseudo-angle helpers used by the hull and fixed-edge walk.
//
// orient2d and incircle use a two-stage adaptive scheme in the style of
// Shewchuk's robust predicates: a cheap float64 evaluation paired with a
// conservative forward error bound, falling back to exact rational
// arithmetic (math/big) only on the rare input where the fast path's
// error bound cannot rule out a sign flip. This gives the same exactness
// guarantee as the full expansion-arithmetic implementation without
// carrying its size.
package predicate

import (
	"math"
	"math/big"

	"github.com/formlabs-oss/stepmesh/geom"
)

// epsilon is the unit roundoff of IEEE-754 double arithmetic (2^-53),
// the unit in which Shewchuk's fast-path error bounds for
// orient2d/incircle are expressed.
const epsilon = 1.0 / (1 << 53)

// Orient2D returns a value whose sign matches the sign of the determinant
//
//	| bx-ax  by-ay |
//	| cx-ax  cy-ay |
//
// positive when c lies to the left of the directed line a->b, negative
// when to the right, and exactly zero when a, b, c are collinear.
func Orient2D(a, b, c geom.Point) float64 {
	acx := a.X - c.X
	bcx := b.X - c.X
	acy := a.Y - c.Y
	bcy := b.Y - c.Y
	det := acx*bcy - acy*bcx

	detsum := math.Abs(acx*bcy) + math.Abs(acy*bcx)
	errbound := (3 + 16*epsilon) * epsilon * detsum
	if math.Abs(det) > errbound {
		return det
	}
	return orient2DExact(a, b, c)
}

func orient2DExact(a, b, c geom.Point) float64 {
	ax, bx, cx := ratFromFloat(a.X), ratFromFloat(b.X), ratFromFloat(c.X)
	ay, by, cy := ratFromFloat(a.Y), ratFromFloat(b.Y), ratFromFloat(c.Y)
	acx := sub(ax, cx)
	bcx := sub(bx, cx)
	acy := sub(ay, cy)
	bcy := sub(by, cy)

	det := sub(mul(acx, bcy), mul(acy, bcx))
	return float64(det.Sign())
}

// InCircle returns a value whose sign is positive when d lies strictly
// inside the circumcircle of a, b, c (assumed counterclockwise), negative
// when strictly outside, and zero when the four points are cocircular.
func InCircle(a, b, c, d geom.Point) float64 {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	abdet := adx*bdy - bdx*ady
	bcdet := bdx*cdy - cdx*bdy
	cadet := cdx*ady - adx*cdy

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	det := alift*bcdet + blift*cadet + clift*abdet

	permanent := (math.Abs(alift*bcdet) + math.Abs(blift*cadet) + math.Abs(clift*abdet))
	errbound := (10 + 96*epsilon) * epsilon * permanent
	if math.Abs(det) > errbound {
		return det
	}
	return inCircleExact(a, b, c, d)
}

func inCircleExact(a, b, c, d geom.Point) float64 {
	ax, bx, cx, dx0 := ratFromFloat(a.X), ratFromFloat(b.X), ratFromFloat(c.X), ratFromFloat(d.X)
	ay, by, cy, dy0 := ratFromFloat(a.Y), ratFromFloat(b.Y), ratFromFloat(c.Y), ratFromFloat(d.Y)
	adx := sub(ax, dx0)
	ady := sub(ay, dy0)
	bdx := sub(bx, dx0)
	bdy := sub(by, dy0)
	cdx := sub(cx, dx0)
	cdy := sub(cy, dy0)

	abdet := sub(mul(adx, bdy), mul(bdx, ady))
	bcdet := sub(mul(bdx, cdy), mul(cdx, bdy))
	cadet := sub(mul(cdx, ady), mul(adx, cdy))

	alift := add(mul(adx, adx), mul(ady, ady))
	blift := add(mul(bdx, bdx), mul(bdy, bdy))
	clift := add(mul(cdx, cdx), mul(cdy, cdy))

	det := add(add(mul(alift, bcdet), mul(blift, cadet)), mul(clift, abdet))
	return float64(det.Sign())
}

func ratFromFloat(f float64) *big.Rat { return new(big.Rat).SetFloat64(f) }
func mul(a, b *big.Rat) *big.Rat      { return new(big.Rat).Mul(a, b) }
func add(a, b *big.Rat) *big.Rat      { return new(big.Rat).Add(a, b) }
func sub(a, b *big.Rat) *big.Rat      { return new(big.Rat).Sub(a, b) }

// Acute returns (a-b).(c-b); its sign determines whether the angle at b
// (between rays b->a and b->c) is acute (positive), right (zero), or
// obtuse (negative). Unlike Orient2D/InCircle this is not exactified:
// it is only ever compared against zero alongside an Orient2D check in
// the hull-repair walk, so the same tolerance regime as the rest of
// that walk applies.
func Acute(a, b, c geom.Point) float64 {
	return a.Sub(b).Dot(c.Sub(b))
}

// PseudoAngle maps a direction (dx, dy) to a monotone value in [0, 1)
// without invoking any trigonometric function. The value grows as the
// direction turns clockwise: 0 on the negative X axis, 0.25 on +Y, 0.5
// on +X and 0.75 on -Y. It preserves ordering by true angle but not
// magnitude, so it may be used for sorting/bucketing but never for
// metric angle computations.
func PseudoAngle(dx, dy float64) float64 {
	p := dx / (math.Abs(dx) + math.Abs(dy))
	if dy > 0 {
		return 1 - (3-p)/4
	}
	// The negative X axis itself would give exactly 1; wrap it to 0.
	return math.Mod(1-(1+p)/4, 1)
}
