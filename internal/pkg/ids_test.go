package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDs(t *testing.T) {
	// When: generating two ids of each kind
	player, session := GeneratePlayerID(), GenerateSessionID()

	// Then: they are valid and distinct uuids
	_, err := uuid.Parse(player)
	require.NoError(t, err)
	_, err = uuid.Parse(session)
	require.NoError(t, err)

	assert.NotEqual(t, player, session)
	assert.NotEqual(t, player, GeneratePlayerID())
}
