// Package dom models the small part of a document event model the map
// needs: event targets arranged in a parent chain, typed listeners that can
// be added and removed by ID, bubbling dispatch, and the trusted flag,
// default-prevented flag and stop-propagation controls on each event.
//
// A terminal backend feeds key and focus events into the map container;
// key events bubble up to the document, focus and blur do not.
package dom
