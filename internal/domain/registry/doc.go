// Package registry maps widget type tags to constructors.
//
// The registry is the only place that knows which concrete widget backs a
// tag. Types are listed in registration order, which is the order the add
// widget form offers them.
package registry
