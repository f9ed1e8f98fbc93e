// Package onboarding holds the first-run gating rule.
package onboarding

import "neurobeats/model"

// Decision is the onboarding gate outcome.
type Decision string

const (
	// DecisionLoading means preferences are still being fetched; render
	// nothing final yet rather than flashing the main UI.
	DecisionLoading Decision = "loading"
	// DecisionShow means the authenticated user has not completed first-run
	// setup.
	DecisionShow Decision = "show"
	// DecisionSkip means onboarding is not required.
	DecisionSkip Decision = "skip"
)

// Decide computes whether the onboarding flow should be shown. Unauthenticated
// sessions never see onboarding. A nil prefs with an authenticated session
// means the preferences fetch is still in flight, which defers the decision.
func Decide(authenticated bool, prefs *model.UserPreferences) Decision {
	if !authenticated {
		return DecisionSkip
	}
	if prefs == nil {
		return DecisionLoading
	}
	if prefs.OnboardingCompleted {
		return DecisionSkip
	}
	return DecisionShow
}
