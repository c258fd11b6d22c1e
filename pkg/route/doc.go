// Package route is the Route Validator: it canonicalizes
// free-form administration route strings (via a fixed alias table),
// resolves canonical route metadata (SNOMED code, FHIR code, applicable
// dose forms), and checks route/dose-form compatibility.
//
// Route metadata is the single source of truth for SNOMED route codes
// (DESIGN.md Open Question 2): strategies and builders call Lookup/Validate
// rather than hard-coding a code of their own.
//
// The canonical-entries registry pattern (an id/code/display struct keyed
// by canonical name, with a separate alias table pointing into it) mirrors
// a generic terminology registry shape; a full ValueSet/CodeSystem-bundle
// loader was not carried over since this fixed, small alias table has no
// need of it.
package route
