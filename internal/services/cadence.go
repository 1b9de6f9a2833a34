// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for snapshot cadence checking.
// Each cadence (daily, weekly) has its own checker that encapsulates the
// logic for deciding whether a new summary snapshot is due.

package services

import (
	"fmt"
	"time"
)

// CadenceChecker is the strategy interface for deciding if a snapshot is due.
type CadenceChecker interface {
	// IsDue returns true if a new snapshot should be taken given the time
	// of the last snapshot and the current time.
	IsDue(lastSnapshot, now time.Time) bool
}

// DailyChecker implements CadenceChecker for a daily snapshot cadence.
type DailyChecker struct{}

// IsDue returns true if the last snapshot was taken before today.
func (DailyChecker) IsDue(lastSnapshot, now time.Time) bool {
	if lastSnapshot.IsZero() {
		return true
	}
	lastDate := lastSnapshot.Format("2006-01-02")
	nowDate := now.Format("2006-01-02")
	return lastDate != nowDate
}

// WeeklyChecker implements CadenceChecker for a weekly snapshot cadence.
type WeeklyChecker struct{}

// IsDue returns true if 7 or more days have passed since the last snapshot.
func (WeeklyChecker) IsDue(lastSnapshot, now time.Time) bool {
	if lastSnapshot.IsZero() {
		return true
	}
	daysSince := now.Sub(lastSnapshot).Hours() / 24
	return daysSince >= 7
}

// cadenceStrategies maps cadence names to their corresponding checkers.
var cadenceStrategies = map[string]CadenceChecker{
	"daily":  DailyChecker{},
	"weekly": WeeklyChecker{},
}

// GetCadenceChecker returns the checker for a cadence name.
// Returns an error if the cadence is not supported.
func GetCadenceChecker(cadence string) (CadenceChecker, error) {
	checker, ok := cadenceStrategies[cadence]
	if !ok {
		return nil, fmt.Errorf("unknown snapshot cadence: %s", cadence)
	}
	return checker, nil
}

// RegisterCadenceChecker allows registering custom checkers for new cadences.
func RegisterCadenceChecker(cadence string, checker CadenceChecker) {
	cadenceStrategies[cadence] = checker
}
