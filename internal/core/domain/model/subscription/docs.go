// Package subscription provides the Subscription record linking a transport
// user to an order they want status updates for.
//
// A subscription remembers the last status the user was told about. The
// change-detection sweep notifies only when the order's current status is
// non-empty and differs exactly from that value.
package subscription
