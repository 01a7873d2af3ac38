package outcome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_ValidAndInvalid(t *testing.T) {
	assert.True(t, Valid().IsValid())
	assert.Empty(t, Valid().Notifications())

	o := Fail(CodeNotFound, "Post not found.")
	assert.False(t, o.IsValid())
	require.Len(t, o.Notifications(), 1)
	assert.Equal(t, Notification{Code: CodeNotFound, Description: "Post not found."}, o.Notifications()[0])
	assert.True(t, o.Has(CodeNotFound))
	assert.False(t, o.Has(CodeInternal))
}

func TestOutcome_NotificationsIsCopy(t *testing.T) {
	o := Fail(CodeConflict, "User already exists.")
	ns := o.Notifications()
	ns[0].Description = "mutated"
	assert.Equal(t, "User already exists.", o.Notifications()[0].Description)
}

func TestOutcome_MergeKeepsOrder(t *testing.T) {
	a := Fail(CodeUnprocessable, "Post [Title] is required.")
	b := Fail(CodeUnprocessable, "Post [Content] is required.")
	m := a.Merge(b).Merge(Valid())
	require.Len(t, m.Notifications(), 2)
	assert.Equal(t, "Post [Title] is required.", m.Notifications()[0].Description)
	assert.Equal(t, "Post [Content] is required.", m.Notifications()[1].Description)
}

func TestInternal_CarriesMessage(t *testing.T) {
	o := Internal(errors.New("disk full"))
	assert.Equal(t, "500: disk full", o.Notifications()[0].String())
	e := o.ToErrors()
	assert.Equal(t, "VALIDATION_ERRORS", e.Type)
	assert.Len(t, e.Notifications, 1)
}

func TestResult(t *testing.T) {
	ok := Ok("token")
	v, valid := ok.Value()
	assert.True(t, valid)
	assert.Equal(t, "token", v)

	failed := Failed(Fail(CodeInternal, "boom"), "attempt")
	v, valid = failed.Value()
	assert.False(t, valid)
	assert.Empty(t, v)
	assert.Equal(t, "attempt", failed.Attempted())
	assert.False(t, failed.IsValid())

	assert.Panics(t, func() { Failed(Valid(), 1) })
}
