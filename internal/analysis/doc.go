// Package analysis derives quantities from a run's paths.
//
//   - [SecondDerivative]: centered finite differences on a non-uniform time grid
//   - [PowerSpectrum]: frequency content of a path or field component
//   - [PathPortrait]: desired and observed path overlaid in the x-y plane
//
// The desired path's acceleration bounds how hard a control field must drive
// the dipole:
//
//	ax, _ := analysis.SecondDerivative(rec.T, mat.Col(nil, 0, rec.PathDesired))
package analysis
