// Package events defines the topics and payloads published on the map
// event bus.
//
// Raw keyboard topics carry every key event that reaches the map
// container, whether or not the keyboard controller is enabled or focused.
// Map and overlay topics report state changes after they happen.
package events
