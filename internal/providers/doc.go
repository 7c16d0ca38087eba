// Package providers holds what the bundled capability providers share. The
// providers themselves live in subpackages.
package providers
