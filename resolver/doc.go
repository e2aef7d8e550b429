// Package resolver provides PDF indirect reference resolution.
//
// PDF documents use indirect references (e.g., "5 0 R") to refer to objects
// stored elsewhere in the file. This package resolves those references,
// following chains of references and detecting circular dependencies.
//
// # Basic Usage
//
// Create a resolver with an object reader and resolve references:
//
//	resolver := resolver.NewResolver(reader)
//	obj, err := resolver.Resolve(ref)
//
// Resolve follows reference chains (a reference whose target is itself a
// reference) until it reaches a direct object.
//
// # Deep Resolution
//
// For complete expansion of nested references in dictionaries and arrays:
//
//	resolved, err := resolver.ResolveDeep(obj)
//
// This recursively resolves all indirect references within the object tree.
//
// # Cycle Detection
//
// Circular references are detected and reported as ErrCircularReference
// rather than entering an infinite loop; runaway nesting is cut off with
// ErrDepthExceeded. The maximum depth is configurable:
//
//	resolver := resolver.NewResolver(reader, resolver.WithMaxDepth(50))
//
// A resolver keeps no state between calls, so one instance can be shared
// across goroutines.
package resolver
