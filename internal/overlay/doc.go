// Package overlay tracks the popup currently open over the map.
//
// At most one popup is open at a time; opening another closes the first.
// Each popup decides at creation whether Escape may dismiss it. The
// keyboard controller only depends on that capability through the
// Dismissible interface.
package overlay
