package testutil

import "testing"

// Scenario steps run as nested subtests, so a catalog scenario reports as
// "Given the seeded catalog/When listing archived services/Then ...".
type step string

const (
	given step = "Given"
	when  step = "When"
	then  step = "Then"
	and   step = "And"
)

func (s step) run(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(string(s)+" "+desc, fn)
}

func Given(t *testing.T, desc string, fn func(t *testing.T)) { t.Helper(); given.run(t, desc, fn) }
func When(t *testing.T, desc string, fn func(t *testing.T))  { t.Helper(); when.run(t, desc, fn) }
func Then(t *testing.T, desc string, fn func(t *testing.T))  { t.Helper(); then.run(t, desc, fn) }

// And continues the preceding step; it is used for follow-up assertions on
// the same response.
func And(t *testing.T, desc string, fn func(t *testing.T)) { t.Helper(); and.run(t, desc, fn) }
