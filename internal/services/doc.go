// Package services defines the [MovieService] interface for remote movie databases and implements it for OMDb.
//
// # OMDb Implementation
//
// [OMDbService] speaks the two read-only calls of https://www.omdbapi.com:
//   - search by title: GET /?apikey={key}&s={title}
//   - lookup by identifier: GET /?apikey={key}&i={imdbID}
//
// OMDb answers HTTP 200 even when nothing matched; the JSON "Response" flag is "False" and "Error" holds the reason.
// The client turns that into [shared.ErrNoResults] so callers can tell "no matches" apart from transport failures.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNoResults] : the search matched nothing
//   - [shared.ErrMovieNotFound] : the lookup identifier is unknown
//   - [shared.ErrAPIRequest] : HTTP request failed, non-2xx status, or undecodable body
//   - [shared.ErrMissingCredentials] : no API key configured
//
// Every request is counted and timed in [metrics.OMDbRequestsTotal] and [metrics.OMDbRequestDuration].
package services
