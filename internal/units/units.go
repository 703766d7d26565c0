// Package units holds the shared physical conversion constants used by
// the impact engine. Values follow the conventions of nuclear-effects
// literature: explosive yields are expressed in TNT equivalents.
package units

const (
	// JoulesPerMegatonTNT converts kinetic energy to megatons of TNT.
	JoulesPerMegatonTNT = 4.184e15
	// JoulesPerTonTNT converts energy to tons of TNT.
	JoulesPerTonTNT = 4.184e9
	// JoulesPerHiroshimaBomb is the ~15 kt yield of the Little Boy device.
	JoulesPerHiroshimaBomb = 15 * 1000 * JoulesPerTonTNT

	// KMSToMS converts km/s to m/s.
	KMSToMS = 1000.0

	// KMPerDegree is the approximate ground distance of one degree of
	// latitude, used for coarse coordinate offsets.
	KMPerDegree = 111.0
)

// MegatonsTNT converts an energy in joules to megatons of TNT.
func MegatonsTNT(joules float64) float64 {
	return joules / JoulesPerMegatonTNT
}

// HiroshimaEquivalents expresses an energy in joules as a multiple of
// the Hiroshima bomb yield.
func HiroshimaEquivalents(joules float64) float64 {
	return joules / JoulesPerHiroshimaBomb
}
