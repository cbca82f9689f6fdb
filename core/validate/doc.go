// Package validate normalizes and checks the user-supplied parts of a search
// request before any outbound call is made: the free-text query and the
// optional calendar-date bounds.
//
// Every failure is reported as a [*ValidationError], which callers surface
// immediately and never retry.
package validate
