// Package web serves the movie search and watchlist widget as an HTMX page.
//
// The page is rendered server side. Buttons on the cards and the header carry hx-* attributes,
// so every interaction is a request to one of the routes below, answered with an HTML fragment
// swapped into the results container:
//
//	GET    /                    full page
//	POST   /search              form field "title"; results fragment
//	POST   /watchlist/{id}      add; 204, nothing swapped
//	DELETE /watchlist/{id}      remove; results fragment
//	POST   /toggle              results fragment
//	GET    /images/missing.gif  placeholder poster
//	GET    /static/*            stylesheet
//	GET    /health              liveness probe
//	GET    /metrics             prometheus metrics
//
// Fragments also carry the toggle button and search bar marked hx-swap-oob,
// which keeps the label, placeholder, and search bar visibility in step with the controller.
package web
