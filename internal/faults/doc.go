// Package faults provides error inspection for failures observed while
// talking to the GitHub REST API. It centralizes the logic for telling
// transient transport faults apart from permanent failures, eliminating
// the need for string-based error checking throughout the codebase.
package faults
