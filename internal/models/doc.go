// Package models defines the movie record shared by every layer of mvx.
//
// The package contains two categories of types:
//
// 1. Records: the flat movie data rendered as cards and kept in the watchlist
//   - [RawMovie] : loosely-shaped input, every field optional
//   - [Movie] : canonical record with every field populated, produced by [Normalize]
//
// 2. Persistent Entities: database-backed models
//   - [SearchRecord] : one search issued by a user, with its outcome
//
// Persistent entities implement the [Model] interface providing an ID, a creation timestamp, and validation.
package models
