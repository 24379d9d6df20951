package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCheckTransition(t *testing.T) {
	// pending may move to any terminal state
	assert.True(t, ValidCheckTransition(CheckPending, CheckCollected))
	assert.True(t, ValidCheckTransition(CheckPending, CheckRejected))
	assert.True(t, ValidCheckTransition(CheckPending, CheckVoided))

	// terminal states are final
	assert.False(t, ValidCheckTransition(CheckCollected, CheckRejected))
	assert.False(t, ValidCheckTransition(CheckRejected, CheckPending))
	assert.False(t, ValidCheckTransition(CheckVoided, CheckCollected))

	// no self-transitions or unknown states
	assert.False(t, ValidCheckTransition(CheckPending, CheckPending))
	assert.False(t, ValidCheckTransition(CheckPending, "bounced"))
	assert.False(t, ValidCheckTransition("", CheckCollected))
}
