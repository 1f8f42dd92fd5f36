// Package repositories implements persistence for the watchlist and the search history.
//
// The watchlist mirrors a browser's local storage: one key holds the whole collection serialized as a JSON array.
// That key lives in a [KeyValueStore], of which there are two implementations:
//   - [SQLiteStore] : a local_storage table in the mvx SQLite database (default)
//   - [RedisStore] : a single redis string key, for sharing one watchlist between machines
//
// Key Implementations:
//   - [WatchlistRepository] : in-memory list of canonical movies, loaded once and written back after every mutation
//   - [SearchHistoryRepository] : append-only log of searches with their outcome
//
// Corrupt or missing watchlist data is never fatal; [WatchlistRepository.Load] falls back to an empty collection.
package repositories
