// Package nsubjettiness computes the N-subjettiness jet shape tau_N^beta:
// how well a jet's constituents are described by N subjet axes, with
// angular distances raised to the power beta.
//
// Axes come from exclusive kt clustering of the constituents and the measure
// is unnormalized, so
//
//	tau_N^beta = sum_i pt_i * min_k dR_ik^beta
//
// A Calculator evaluates a whole list of (N, beta) observables for one jet,
// reusing a single clustering for every N.
package nsubjettiness
