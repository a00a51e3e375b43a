// Package server wires the HTTP surface: the action-dispatched streaming
// endpoint, the video search proxies, and the observability routes.
package server
