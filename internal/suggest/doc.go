// Package suggest proposes the closest known name for a misspelt one.
//
// Names are compared after normalization (case folding, separator removal
// and CamelCase splitting) using a length-normalized Levenshtein similarity.
package suggest
