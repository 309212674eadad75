package auditlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNopRecorder(t *testing.T) {
	var rec Recorder = Nop{}
	err := rec.Record(context.Background(), Entry{
		Action:  ActionCreateBucket,
		Bucket:  "my-bucket",
		Outcome: OutcomeSuccess,
	})
	assert.NoError(t, err)
	assert.NoError(t, rec.Close())
}

func TestEntryNormalized(t *testing.T) {
	e := Entry{Action: ActionUploadFile, Bucket: "b", Object: "a.txt"}
	n := e.Normalized()
	assert.False(t, n.Time.IsZero())
	assert.True(t, e.Time.IsZero(), "Normalized must not mutate the receiver")

	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e.Time = fixed
	assert.Equal(t, fixed, e.Normalized().Time)
}
