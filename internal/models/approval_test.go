package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenStateClassification(t *testing.T) {
	now := time.Now()
	token := "tok"
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	record := &DeliveryNoteApproval{}
	require.Equal(t, TokenNone, record.TokenState(now))

	record.ApprovalToken = &token
	record.TokenExpiresAt = &future
	require.Equal(t, TokenLive, record.TokenState(now))

	record.TokenExpiresAt = &past
	require.Equal(t, TokenExpired, record.TokenState(now))
}

func TestApprovalActionTerminalStatus(t *testing.T) {
	require.Equal(t, ApprovalApproved, ActionApprove.TerminalStatus())
	require.Equal(t, ApprovalRejected, ActionReject.TerminalStatus())
	require.False(t, ApprovalAction("postpone").Valid())
}

func TestTransactionTypeValid(t *testing.T) {
	require.True(t, TransactionIn.Valid())
	require.True(t, TransactionOut.Valid())
	require.True(t, TransactionAdjustment.Valid())
	require.False(t, TransactionType("loan").Valid())
}
