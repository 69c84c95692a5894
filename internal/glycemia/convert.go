// Package glycemia holds the unit-aware glycemia arithmetic: conversion
// between mg/dL and mmol/L, plausibility validation and clinical status
// classification. Everything here is pure.
package glycemia

import (
	"fmt"
	"math"

	"github.com/mlefevre/diabecare/internal/domain"
	apperrors "github.com/mlefevre/diabecare/internal/errors"
)

// 1 mmol/L = 18.0182 mg/dL.
const mmolToMgFactor = 18.0182

// Plausible physiological bounds per unit. Deliberately wider than the normal
// clinical range: they exclude implausible entries, not abnormal-but-real ones.
const (
	minMgDL  = 20.0
	maxMgDL  = 600.0
	minMmolL = 1.1
	maxMmolL = 33.3
)

// MmolToMg converts mmol/L to mg/dL, rounded to the nearest integer.
func MmolToMg(mmol float64) float64 {
	return math.Round(mmol * mmolToMgFactor)
}

// MgToMmol converts mg/dL to mmol/L, rounded to one decimal place.
func MgToMmol(mg float64) float64 {
	return math.Round(mg/mmolToMgFactor*10) / 10
}

// ToCanonical converts a user-entered value to the canonical storage unit
// (mg/dL). Identity when the value is already canonical.
func ToCanonical(value float64, unit domain.Unit) float64 {
	if unit == domain.UnitMmolL {
		return MmolToMg(value)
	}
	return value
}

// FromCanonical converts a canonical mg/dL value to the requested display
// unit, applying that unit's rounding convention.
func FromCanonical(canonical float64, target domain.Unit) float64 {
	if target == domain.UnitMmolL {
		return MgToMmol(canonical)
	}
	return canonical
}

// Convert converts a value between units. The input is returned unchanged
// when both units are equal.
//
// The per-unit rounding conventions (integer mg/dL, one-decimal mmol/L) make
// round-trip conversion lossy; callers must not assume it is an identity.
func Convert(value float64, from, to domain.Unit) float64 {
	if from == to {
		return value
	}
	if from == domain.UnitMgDL && to == domain.UnitMmolL {
		return MgToMmol(value)
	}
	if from == domain.UnitMmolL && to == domain.UnitMgDL {
		return MmolToMg(value)
	}
	return value
}

// Validate rejects non-finite, non-positive and physiologically implausible
// values. The returned error carries the user-facing message.
func Validate(value float64, unit domain.Unit) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return apperrors.NewValidationError("Veuillez entrer une valeur valide")
	}

	if unit == domain.UnitMmolL {
		if value < minMmolL || value > maxMmolL {
			return apperrors.NewValidationError("La valeur doit être entre 1.1 et 33.3 mmol/L")
		}
		return nil
	}

	if value < minMgDL || value > maxMgDL {
		return apperrors.NewValidationError("La valeur doit être entre 20 et 600 mg/dL")
	}
	return nil
}

// Format renders a value with its unit for display.
func Format(value float64, unit domain.Unit) string {
	if unit == domain.UnitMmolL {
		return fmt.Sprintf("%.1f mmol/L", value)
	}
	return fmt.Sprintf("%d mg/dL", int(math.Round(value)))
}

// Range is an inclusive value interval.
type Range struct {
	Min float64
	Max float64
}

// NormalRange holds the clinical reference ranges for one unit.
type NormalRange struct {
	Fasting  Range
	PostMeal Range
	Unit     domain.Unit
}

// NormalRanges returns the fasting and post-meal reference ranges expressed
// in the given unit.
func NormalRanges(unit domain.Unit) NormalRange {
	if unit == domain.UnitMmolL {
		return NormalRange{
			Fasting:  Range{Min: 3.9, Max: 7.8},
			PostMeal: Range{Min: 3.9, Max: 10.0},
			Unit:     domain.UnitMmolL,
		}
	}
	return NormalRange{
		Fasting:  Range{Min: 70, Max: 140},
		PostMeal: Range{Min: 70, Max: 180},
		Unit:     domain.UnitMgDL,
	}
}
