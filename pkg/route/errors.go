package route

import "fmt"

func errUnknownCanonicalRoute(name string) error {
	return fmt.Errorf("route: %q is not a registered canonical route", name)
}
