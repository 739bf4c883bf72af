package frost

// lagrangeCoefficient computes the Lagrange basis coefficient for
// participant id within the set participants, evaluated at x=0 (the
// polynomial's constant term), the standard Shamir-interpolation
// weight applied to each participant's signature share during
// aggregation.
func lagrangeCoefficient(id uint16, participants []uint16) *scalar {
	num := scalarFromUint16(1)
	den := scalarFromUint16(1)
	xi := scalarFromUint16(id)

	for _, other := range participants {
		if other == id {
			continue
		}
		xj := scalarFromUint16(other)
		num = scalarMultiply(num, xj)
		den = scalarMultiply(den, scalarSub(xj, xi))
	}
	return scalarMultiply(num, scalarInvert(den))
}
