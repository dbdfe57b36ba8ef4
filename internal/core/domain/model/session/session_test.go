package session_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/session"
	"agenthub/internal/pkg/errs"
)

func TestNewSession(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		agentID := kernel.NewUUID()

		s, err := session.NewSession(agentID, "token-123")

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.AgentID().IsEqual(agentID))
		assert.Equal(t, "token-123", s.Credential())
	})

	t.Run("missing agent identity", func(t *testing.T) {
		var agentID kernel.UUID

		s, err := session.NewSession(agentID, "token-123")

		require.Error(t, err)
		assert.Zero(t, s)
	})

	t.Run("missing credential", func(t *testing.T) {
		s, err := session.NewSession(kernel.NewUUID(), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Zero(t, s)
	})
}

func TestSession_Topic(t *testing.T) {
	t.Run("topic is derived from agent identity", func(t *testing.T) {
		agentID := kernel.NewUUID()
		s, err := session.NewSession(agentID, "token-123")
		require.NoError(t, err)

		topic, err := s.Topic()

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("agent-%s", agentID), topic)
	})

	t.Run("derivation is deterministic", func(t *testing.T) {
		s, err := session.NewSession(kernel.NewUUID(), "token-123")
		require.NoError(t, err)

		first, err := s.Topic()
		require.NoError(t, err)
		second, err := s.Topic()
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("zero value session yields no topic", func(t *testing.T) {
		var s session.Session

		_, err := s.Topic()

		require.Error(t, err)
	})
}

func TestSession_String(t *testing.T) {
	t.Run("credential is redacted", func(t *testing.T) {
		s, err := session.NewSession(kernel.NewUUID(), "super-secret")
		require.NoError(t, err)

		assert.NotContains(t, s.String(), "super-secret")
	})
}
