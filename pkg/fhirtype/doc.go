// Package fhirtype provides the minimal set of FHIR R4 data types the
// medication signature engine emits: Quantity, Ratio, Range, Duration,
// Coding, CodeableConcept, Timing, and Dosage.
//
// These are hand-written rather than generated from StructureDefinitions
// (see DESIGN.md for why the StructureDefinition-driven codegen pipeline
// was dropped): the engine only ever produces a Dosage and its
// constituent parts, never an arbitrary FHIR resource.
package fhirtype
