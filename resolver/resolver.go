package resolver

import (
	"errors"
	"fmt"

	"github.com/yosephbernandus/pdf-parser/core"
)

var (
	// ErrCircularReference is reported when a reference chain or object
	// tree leads back to an object already being resolved.
	ErrCircularReference = errors.New("pdf: circular reference")

	// ErrDepthExceeded is reported when resolution recurses past the
	// configured maximum depth.
	ErrDepthExceeded = errors.New("pdf: resolution depth exceeded")
)

// ObjectReader is the document access the resolver needs: objects by
// number and by reference.
type ObjectReader interface {
	GetObject(objNum int) (core.Object, error)
	ResolveReference(ref core.IndirectRef) (core.Object, error)
}

// ObjectResolver resolves indirect references against an ObjectReader.
// It carries no resolution state of its own, so a single resolver is safe
// for concurrent use.
type ObjectResolver struct {
	reader   ObjectReader
	maxDepth int
}

// Option configures the resolver.
type Option func(*ObjectResolver)

// WithMaxDepth sets the maximum recursion depth (default: 100).
func WithMaxDepth(depth int) Option {
	return func(r *ObjectResolver) {
		r.maxDepth = depth
	}
}

// NewResolver creates a resolver backed by reader.
func NewResolver(reader ObjectReader, opts ...Option) *ObjectResolver {
	r := &ObjectResolver{
		reader:   reader,
		maxDepth: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve follows a chain of indirect references until it reaches a
// direct object. Members of resolved dictionaries and arrays are left as
// they are; use ResolveDeep to expand those too.
func (r *ObjectResolver) Resolve(obj core.Object) (core.Object, error) {
	visited := make(map[int]bool)
	for {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, nil
		}
		if visited[ref.Number] {
			return nil, fmt.Errorf("object %d: %w", ref.Number, ErrCircularReference)
		}
		if len(visited) >= r.maxDepth {
			return nil, fmt.Errorf("reference chain at object %d: %w", ref.Number, ErrDepthExceeded)
		}
		visited[ref.Number] = true

		resolved, err := r.reader.ResolveReference(ref)
		if err != nil {
			return nil, fmt.Errorf("resolve %d %d R: %w", ref.Number, ref.Generation, err)
		}
		obj = resolved
	}
}

// ResolveDeep resolves obj and every indirect reference nested inside it,
// returning a fully expanded copy of the object tree.
func (r *ObjectResolver) ResolveDeep(obj core.Object) (core.Object, error) {
	return r.resolveDeep(obj, make(map[int]bool), 0)
}

func (r *ObjectResolver) resolveDeep(obj core.Object, visited map[int]bool, depth int) (core.Object, error) {
	if depth >= r.maxDepth {
		return nil, fmt.Errorf("depth %d: %w", depth, ErrDepthExceeded)
	}

	switch v := obj.(type) {
	case core.IndirectRef:
		if visited[v.Number] {
			return nil, fmt.Errorf("object %d: %w", v.Number, ErrCircularReference)
		}
		visited[v.Number] = true

		resolved, err := r.reader.ResolveReference(v)
		if err != nil {
			return nil, fmt.Errorf("resolve %d %d R: %w", v.Number, v.Generation, err)
		}
		result, err := r.resolveDeep(resolved, visited, depth+1)
		// The same object may legitimately appear in sibling branches;
		// only a reference on the current path is a cycle.
		delete(visited, v.Number)
		return result, err

	case core.Dict:
		resolved := make(core.Dict, len(v))
		for key, value := range v {
			resolvedValue, err := r.resolveDeep(value, visited, depth+1)
			if err != nil {
				return nil, fmt.Errorf("key /%s: %w", key, err)
			}
			resolved[key] = resolvedValue
		}
		return resolved, nil

	case core.Array:
		resolved := make(core.Array, len(v))
		for i, elem := range v {
			resolvedElem, err := r.resolveDeep(elem, visited, depth+1)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			resolved[i] = resolvedElem
		}
		return resolved, nil

	case *core.Stream:
		resolvedDict, err := r.resolveDeep(v.Dict, visited, depth+1)
		if err != nil {
			return nil, fmt.Errorf("stream dictionary: %w", err)
		}
		return &core.Stream{Dict: resolvedDict.(core.Dict), Data: v.Data}, nil

	default:
		return obj, nil
	}
}

// ResolveDict deep-resolves a dictionary and all its values.
func (r *ObjectResolver) ResolveDict(dict core.Dict) (core.Dict, error) {
	resolved, err := r.ResolveDeep(dict)
	if err != nil {
		return nil, err
	}
	return resolved.(core.Dict), nil
}

// ResolveArray deep-resolves an array and all its elements.
func (r *ObjectResolver) ResolveArray(arr core.Array) (core.Array, error) {
	resolved, err := r.ResolveDeep(arr)
	if err != nil {
		return nil, err
	}
	return resolved.(core.Array), nil
}

// ResolveReference follows a single reference and any chain it leads to.
// This makes the resolver usable anywhere a core.ReferenceResolver is
// expected.
func (r *ObjectResolver) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	return r.Resolve(ref)
}

// GetObject loads an object by number without resolving it.
func (r *ObjectResolver) GetObject(objNum int) (core.Object, error) {
	return r.reader.GetObject(objNum)
}

// GetObjectResolved loads an object by number and follows any reference
// chain it turns out to be.
func (r *ObjectResolver) GetObjectResolved(objNum int) (core.Object, error) {
	obj, err := r.reader.GetObject(objNum)
	if err != nil {
		return nil, err
	}
	return r.Resolve(obj)
}
