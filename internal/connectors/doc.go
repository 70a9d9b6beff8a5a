// Package connectors provides implementations of the PostSource port.
// Each connector knows how to list and download blog posts from a
// specific source; github is the only one currently wired.
package connectors
