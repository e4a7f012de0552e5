// Package order provides the Order record of the tracker: a trackable purchase
// identified by a canonical PREFIX-DIGITS id, together with the fixed status
// catalog operators pick from and the origin countries orders ship from.
//
// Key business rules:
//   - Order ids are unique across the orders table, compared case-insensitively
//   - New orders must carry a catalog status and a known country
//   - Status updates on existing orders accept any string; validation against the
//     catalog happens in the workflows that collect the status
//   - Orders are never deleted
package order
