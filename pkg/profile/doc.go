// Package profile holds the data model: MedicationProfile (an
// immutable descriptor), MedicationRequestContext (a transient request;
// Snapshot deep-copies it, but builders keep the caller's pointer and take
// no copy), and SignatureInstruction (the
// FHIR-shaped output, built on pkg/fhirtype.Dosage).
package profile
