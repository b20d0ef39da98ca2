package context

// contextKey is a private type for context values set by this package,
// so they cannot collide with keys from other packages.
type contextKey string
