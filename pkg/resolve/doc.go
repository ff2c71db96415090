// Package resolve locates template content across an ordered set of
// registered sources.
//
// A host application registers its own template store first and one store per
// mounted component afterwards. Resolution takes an ordered candidate list and
// returns the first match, iterating candidates in the outer loop and sources
// in the inner loop: the earliest candidate that matches anywhere wins, and
// within one candidate the earliest-registered source wins. Every consulted
// (source, candidate) pair is recorded so observers can explain failed lookups
// attempt by attempt.
package resolve
