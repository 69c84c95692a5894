package domain

import (
	"time"
)

// Unit is a glycemia measurement unit.
type Unit string

const (
	UnitMgDL  Unit = "mg/dL"
	UnitMmolL Unit = "mmol/L"
)

// CanonicalUnit is the only unit values are persisted in.
const CanonicalUnit = UnitMgDL

// Reading is one timestamped glycemia measurement.
//
// Value is always in mg/dL regardless of Unit, which only records what the
// user originally typed. Date and Time are independently user-set and may
// disagree; they are never merged or derived from each other.
type Reading struct {
	ID    string    `json:"id"`
	Value float64   `json:"value"`
	Unit  Unit      `json:"unit"`
	Date  time.Time `json:"date"`
	Time  string    `json:"time"`
	Notes string    `json:"notes,omitempty"`
}

// ReminderType categorizes a daily care reminder.
type ReminderType string

const (
	ReminderMedication  ReminderType = "medication"
	ReminderMeasurement ReminderType = "measurement"
	ReminderMeal        ReminderType = "meal"
	ReminderExercise    ReminderType = "exercise"
)

// Reminder is a recurring daily care-task notification definition.
type Reminder struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Time        string       `json:"time"` // "HH:MM"
	IsActive    bool         `json:"isActive"`
	Type        ReminderType `json:"type"`
}

// Period selects a rolling time window over readings.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// AdviceCategory groups educational content entries.
type AdviceCategory string

const (
	AdviceNutrition  AdviceCategory = "nutrition"
	AdviceExercise   AdviceCategory = "exercise"
	AdviceMedication AdviceCategory = "medication"
	AdviceGeneral    AdviceCategory = "general"
)

// Advice is a static educational content entry.
type Advice struct {
	ID       string
	Title    string
	Content  string
	Category AdviceCategory
	ReadTime int // minutes
}
