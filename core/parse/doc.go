// Package parse recovers structured objects from free-form model output.
// Live-search answers often wrap their JSON in prose, markdown code fences or
// "json:" style prefixes, so recovery runs an ordered list of [Strategy]
// values, each a pure function locating one candidate span, and parses the
// first span that yields a JSON object. Parsing falls back to automatic JSON
// repair before giving up on a span.
//
// The main entry point is [Extract], which reports exhaustion of every
// strategy as an explicit false result rather than an error.
package parse
