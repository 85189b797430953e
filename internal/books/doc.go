// Package books defines the Book record, its storage codec, and editor form
// handling.
//
// The collection is stored as one JSON array. Page counts are read leniently:
// a number, a numeric string, or null are all accepted, and anything that is
// not a leading integer becomes 0. Encoding always writes numbers, so a blob
// written by an older client is normalized the first time it is saved.
//
// Fields carries raw editor input. Validate only checks that nothing is blank;
// negative or inconsistent page counts are stored as typed.
package books
