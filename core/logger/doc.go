// Package logger is a standardized event logging framework for the shell.
//
// Each dispatched command produces one entry. Entries are protobuf Structs
// written as newline delimited JSON so they can be replayed or aggregated
// later.
package logger
