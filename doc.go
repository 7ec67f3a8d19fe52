// Package session implements the client-side authentication lifecycle of the
// campus tutoring portal: a session store plus a route guard.
//
// Session store:
//   - The Store owns the portal's single-user session as a tagged state
//     (Initializing, SignedOut, SignedIn). Initialize restores a previously
//     persisted sign-in from a single named storage slot, Login authenticates
//     an email against a user Directory and persists the matched record, and
//     Logout clears both the slot and the in-memory state.
//   - Collaborators are pluggable: Slot (the persisted storage slot), Codec
//     (how the user record is serialized into the slot), Directory (the
//     read-only collection of known users), and ActivitySink (best-effort
//     audit events).
//
// Route guard:
//   - RouteGuard gates protected views on the store's state. While the
//     initial restore is pending it renders a waiting view, a signed-out
//     state redirects to the login entry point, and a signed-in state lets
//     the request through. Evaluate exposes the same three-way decision as a
//     pure function.
//
// Store handles travel explicitly, either by value or through WithContext /
// FromContext; reading the session outside a provider scope is a programming
// error and fails with ErrOutsideProvider.
package session
