// Package modelchecker analyzes finite-state probabilistic models:
// Markov Chains and Markov Decision Processes.
//
// The core code is in package 'model', model descriptions are parsed
// by package 'read', and a command-line tool is in 'cmd/mctool'.
package modelchecker
