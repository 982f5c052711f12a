// Package terminal holds the pieces of terminal handling that tcell leaves
// to the application: picking a color mode before the screen opens, and
// restoring a usable terminal after a crash.
package terminal
