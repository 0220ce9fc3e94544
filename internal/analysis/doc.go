// Package analysis summarizes the sampled series of a stored run.
//
// [Spectrum] finds the dominant frequency of a signal, which for a single
// bouncing sphere is its bounce rate. [Summarize] reports mean, spread and
// range.
package analysis
