// Package analysis extracts orbital characteristics from recorded tracks.
//
//   - [DominantPeriod]: strongest period of a sampled series via [PowerSpectrum]
//   - [Apsides]: closest and farthest distance and the implied eccentricity
//
// The plot command uses both on a body's distance from the barycenter:
//
//	period, ok := analysis.DominantPeriod(distances, sampleDt)
package analysis
