package model

import "testing"

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Fatal("zero value should not be fitted")
	}
	if e.State().String() != "not_fitted" {
		t.Errorf("State() = %s, want not_fitted", e.State())
	}

	e.SetFitted()
	if !e.IsFitted() || e.State() != Fitted {
		t.Fatal("SetFitted should mark the estimator as fitted")
	}

	e.Reset()
	if e.IsFitted() {
		t.Fatal("Reset should clear the fitted state")
	}
}
