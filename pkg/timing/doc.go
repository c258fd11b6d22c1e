// Package timing is the Temporal Parser: it turns a natural
// language frequency string, an array of such strings (a titration
// schedule), or an already-structured fhirtype.Timing into one or more
// fhirtype.Timing values, detecting and splitting titration phases and
// scoring its own confidence.
//
// Phase and frequency detection is regex-driven: a small table of
// titration/frequency patterns, each matched and then decomposed into a
// fhirtype.TimingRepeat, rather than a general grammar.
package timing
