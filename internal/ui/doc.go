// Package ui defines the page elements the Connection Manager drives and a
// terminal implementation of them.
package ui
