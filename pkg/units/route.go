package units

import "fmt"

// Route is an immutable, already-canonicalized administration route name
// (e.g. "Orally", "Intramuscularly"). Canonicalization, alias resolution,
// and SNOMED lookup are pkg/route's job; this type only guards against an
// empty value reaching a builder.
type Route struct {
	canonical string
}

// NewRoute wraps an already-canonical route name.
func NewRoute(canonical string) (Route, error) {
	if canonical == "" {
		return Route{}, fmt.Errorf("route must not be empty")
	}
	return Route{canonical: canonical}, nil
}

func (r Route) String() string { return r.canonical }
