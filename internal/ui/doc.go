// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the web page: a search input above a list of result cards, and a watchlist view
// reached with tab. Every action goes through a [views.Controller], so the terminal and the web app
// share the same view state rules.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Searches run as commands so the input stays responsive while detail lookups are in flight.
//
// Keys: enter searches, / returns to the input, a adds the selected movie, d removes it,
// tab switches views, q quits. Contextual help is displayed via charmbracelet/bubbles/help.
package ui
