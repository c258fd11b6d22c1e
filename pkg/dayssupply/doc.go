// Package dayssupply computes days-supply for a dispensed package: given
// a package quantity/unit, a dose amount/unit, a timing, and
// the dispensed medication, it estimates how many days the package lasts.
//
// Dispatch mirrors pkg/strategy's specificity-ranked selection but
// over a smaller, purpose-built Strategy interface: TitrationDaysSupplyStrategy
// (DOSE_FORM_AND_INGREDIENT) matches a titration schedule, TabletDaysSupplyStrategy
// and LiquidDaysSupplyStrategy (both DOSE_FORM) match solid orals and liquids.
package dayssupply
