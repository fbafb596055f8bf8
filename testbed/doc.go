// Package testbed provides a synthetic host engine for exercising the
// colvars proxy end to end: atoms performing a thermal random walk in a
// periodic box, with the full per-step data-sharing protocol (snapshot
// refresh, force drain, energy drain) and every optional capability the
// proxy can discover.
//
// The dynamics are deliberately crude. The point is the protocol, not the
// physics.
package testbed
