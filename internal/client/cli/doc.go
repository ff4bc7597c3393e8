// Package cli provides the interactive SimCar terminal client.
//
// It sits on top of the gateways and the client state store and replaces the
// pages of the web client with REPL commands. Browsing listings and the quiz
// are public; selling, favorites and the profile need a login.
//
// Key features:
//   - Signup / Login / Logout / Whoami
//   - Search, Show and Diagnose listings
//   - Sell, Edit, Remove listings and pick their thumbnail
//   - Favorites and the member's own sales
//   - The used-car quiz
//
// A 401 from any call drops the session; the Navigator turns that into a
// switch back to the login view. The REPL is started via App.Run, which
// blocks until the user exits or input ends.
package cli
