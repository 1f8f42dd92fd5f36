// Package views implements the headless view controller shared by the web and terminal front ends.
//
// A [Controller] holds the two-state view (search results or watchlist), the toggle label, the search
// input placeholder, and the last search content. Front ends call one method per user action and render
// the returned [Snapshot].
//
// Searches are ticketed: each call takes the next ticket, and a search that finishes after a newer one
// started leaves the view untouched and returns [shared.ErrSuperseded].
package views
