// Package stats derives reading statistics from a book collection.
//
// Everything here is a pure function of its input. The aggregate percentage is
// guarded against an empty collection and always yields a number. The
// per-book percentage follows a ZeroPagePolicy chosen in config, because a
// book with zero total pages has no meaningful ratio.
package stats
