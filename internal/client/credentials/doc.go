// Package credentials persists the signed-in identity of one app and
// broadcasts every change to it.
//
// The record is two rows (username, token) of the app's metadata namespace.
// Save and Clear write both rows in one transaction, so a reader never sees
// one without the other. Writes and their notifications are serialized:
// subscribers observe changes in the order the writes completed.
//
// A subscription starts with the current value and then receives every
// completed Save (the new snapshot) and Clear (nil). Each subscriber has its
// own unbounded queue, so a slow reader never blocks writers or other
// subscribers.
package credentials
