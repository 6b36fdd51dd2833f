package datapipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	original := &Request{DataDefinition: DataDefinition{
		Headers: map[string]string{"a": "1"},
		Ignore:  map[string]interface{}{"x": true},
		Extra:   map[string]interface{}{"e": 1},
	}, frozen: true}

	clone := original.Clone()
	clone.Headers["a"] = "2"
	clone.Ignore["x"] = false
	clone.Extra["e"] = 2

	assert.Equal(t, "1", original.Headers["a"])
	assert.Equal(t, true, original.Ignore["x"])
	assert.Equal(t, 1, original.Extra["e"])
	assert.False(t, clone.Frozen(), "a clone is a fresh, mutable identity")
}

func TestResponseIsErrorBearing(t *testing.T) {
	assert.False(t, (&Response{Status: 200}).IsErrorBearing())
	assert.True(t, (&Response{Status: 404}).IsErrorBearing())
	assert.True(t, (&Response{Status: 200, Meta: Meta{Error: true}}).IsErrorBearing())
	assert.True(t, (&Response{Status: 0}).IsErrorBearing())
}

func TestResponseCloneIsIndependent(t *testing.T) {
	rc := 2
	original := &Response{Meta: Meta{Messages: []Message{{Code: "x"}}, RetryCount: &rc}}
	clone := original.Clone()

	clone.Meta.Messages[0].Code = "y"
	*clone.Meta.RetryCount = 9

	assert.Equal(t, "x", original.Meta.Messages[0].Code)
	assert.Equal(t, 2, *original.Meta.RetryCount)
}
