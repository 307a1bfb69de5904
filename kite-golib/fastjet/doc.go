// Package fastjet implements four-momentum pseudo-jets and sequential
// recombination jet clustering (kt, Cambridge/Aachen and anti-kt) with the
// E-scheme, following the conventions of the FastJet library: rapidity and
// azimuth caching, a merge history that supports inclusive and exclusive jet
// extraction, and constituent lookup through that history.
package fastjet
