package model_test

import (
	"testing"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidLineTransition(t *testing.T) {
	allowed := [][2]string{
		{model.LineStatusActive, model.LineStatusPending},
		{model.LineStatusPending, model.LineStatusClear},
		{model.LineStatusClear, model.LineStatusPending},
	}
	for _, tr := range allowed {
		assert.True(t, model.ValidLineTransition(tr[0], tr[1]), "%s → %s should be allowed", tr[0], tr[1])
	}

	denied := [][2]string{
		{model.LineStatusActive, model.LineStatusClear},
		{model.LineStatusPending, model.LineStatusActive},
		{model.LineStatusClear, model.LineStatusActive},
		{model.LineStatusClear, model.LineStatusClear},
		{model.LineStatusActive, model.LineStatusActive},
	}
	for _, tr := range denied {
		assert.False(t, model.ValidLineTransition(tr[0], tr[1]), "%s → %s should be denied", tr[0], tr[1])
	}
}

func TestApplyLineStatusStampsClearedAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	status, clearedAt, err := model.ApplyLineStatus(model.LineStatusPending, nil, model.LineStatusClear, now)
	require.NoError(t, err)
	assert.Equal(t, model.LineStatusClear, status)
	require.NotNil(t, clearedAt)
	assert.Equal(t, now, *clearedAt)

	// Leaving clear wipes the stamp.
	later := now.Add(24 * time.Hour)
	status, clearedAt, err = model.ApplyLineStatus(model.LineStatusClear, clearedAt, model.LineStatusPending, later)
	require.NoError(t, err)
	assert.Equal(t, model.LineStatusPending, status)
	assert.Nil(t, clearedAt)
}

func TestApplyLineStatusRejectsInvalid(t *testing.T) {
	now := time.Now().UTC()

	_, _, err := model.ApplyLineStatus(model.LineStatusActive, nil, model.LineStatusClear, now)
	assert.Error(t, err, "active cannot jump straight to clear")

	_, _, err = model.ApplyLineStatus(model.LineStatusPending, nil, "shipped", now)
	assert.Error(t, err, "unknown status")
}

func TestPendingRecordStamp(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	rec := &model.PendingRecord{}

	rec.Stamp(model.PendingStatusPending, now)
	assert.Equal(t, model.PendingStatusPending, rec.Status)
	require.NotNil(t, rec.PendingDate)
	assert.Nil(t, rec.ClearedDate)

	later := now.Add(48 * time.Hour)
	rec.Stamp(model.PendingStatusClear, later)
	assert.Equal(t, model.PendingStatusClear, rec.Status)
	assert.Nil(t, rec.PendingDate)
	require.NotNil(t, rec.ClearedDate)
	assert.Equal(t, later, *rec.ClearedDate)
}
