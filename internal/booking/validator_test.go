package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltmap/internal/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validInput() Input {
	return Input{
		StationID:   "FR*S1*P1",
		UserName:    "Claire Dupont",
		PhoneNumber: "+33612345678",
		StartTime:   now.Add(time.Hour),
		EndTime:     now.Add(2 * time.Hour),
	}
}

func TestValidDraft(t *testing.T) {
	draft, err := Validate(validInput(), now)
	require.NoError(t, err)
	assert.Equal(t, "FR*S1*P1", draft.StationID)
	assert.Equal(t, models.ReservationPending, draft.Status)
	assert.Equal(t, time.UTC, draft.StartTime.Location())
	assert.True(t, draft.StartTime.Before(draft.EndTime))
}

func TestMissingNameAndPhone(t *testing.T) {
	in := validInput()
	in.UserName = "   "
	in.PhoneNumber = ""

	_, err := Validate(in, now)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []Violation{ViolationMissingName, ViolationMissingPhone}, verr.Violations)
}

func TestInvalidRange(t *testing.T) {
	// start == end and start > end are rejected identically.
	equal := validInput()
	equal.EndTime = equal.StartTime

	inverted := validInput()
	inverted.EndTime = inverted.StartTime.Add(-time.Hour)

	for _, in := range []Input{equal, inverted} {
		_, err := Validate(in, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []Violation{ViolationInvalidRange}, verr.Violations)
	}
}

func TestPastStart(t *testing.T) {
	in := validInput()
	in.StartTime = now.Add(-time.Second)
	in.EndTime = now.Add(time.Hour)

	_, err := Validate(in, now)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(ViolationPastStart))

	in.StartTime = now.Add(time.Second)
	_, err = Validate(in, now)
	assert.NoError(t, err)
}

func TestViolationsAreCollectedInOrder(t *testing.T) {
	in := Input{
		StationID: "FR*S1*P1",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(-2 * time.Hour),
	}

	_, err := Validate(in, now)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []Violation{
		ViolationMissingName,
		ViolationMissingPhone,
		ViolationInvalidRange,
		ViolationPastStart,
	}, verr.Violations)
}

func TestCombineDateTime(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	day := time.Date(2025, 7, 14, 0, 0, 0, 0, paris)
	clock := time.Date(1970, 1, 1, 9, 30, 45, 999, time.UTC)

	combined := CombineDateTime(day, clock)
	assert.Equal(t, time.Date(2025, 7, 14, 9, 30, 0, 0, paris), combined)
}
