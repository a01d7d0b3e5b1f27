// Package registry maps diagnostic command names to their handlers and
// dispatches decoded operations to them.
package registry
