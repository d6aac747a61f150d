package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCanTransitionMembership(t *testing.T) {
	tests := []struct {
		name    string
		from    MembershipStatus
		to      MembershipStatus
		allowed bool
	}{
		{"draft to information_verified", MembershipDraft, MembershipInformationVerified, true},
		{"draft to rejected", MembershipDraft, MembershipRejected, true},
		{"draft to approved", MembershipDraft, MembershipApproved, false},
		{"draft to payment_required", MembershipDraft, MembershipPaymentRequired, false},
		{"information_verified to payment_required", MembershipInformationVerified, MembershipPaymentRequired, true},
		{"information_verified to approved", MembershipInformationVerified, MembershipApproved, true},
		{"information_verified to rejected", MembershipInformationVerified, MembershipRejected, true},
		{"information_verified to draft", MembershipInformationVerified, MembershipDraft, false},
		{"payment_required to approved", MembershipPaymentRequired, MembershipApproved, true},
		{"payment_required to rejected", MembershipPaymentRequired, MembershipRejected, true},
		{"payment_required to information_verified", MembershipPaymentRequired, MembershipInformationVerified, false},
		{"approved is terminal", MembershipApproved, MembershipDraft, false},
		{"rejected is terminal", MembershipRejected, MembershipDraft, false},
		{"rejected cannot be reopened", MembershipRejected, MembershipInformationVerified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionMembership(tt.from, tt.to))
		})
	}
}

func TestMembershipTerminalStatesAdmitNothing(t *testing.T) {
	all := []MembershipStatus{
		MembershipDraft,
		MembershipInformationVerified,
		MembershipPaymentRequired,
		MembershipApproved,
		MembershipRejected,
	}

	rapid.Check(t, func(t *rapid.T) {
		to := rapid.SampledFrom(all).Draw(t, "to")
		assert.False(t, CanTransitionMembership(MembershipApproved, to))
		assert.False(t, CanTransitionMembership(MembershipRejected, to))
	})
}

func TestCanTransitionTransaction(t *testing.T) {
	tests := []struct {
		name    string
		from    TransactionStatus
		to      TransactionStatus
		allowed bool
	}{
		{"draft to pending_review", TransactionDraft, TransactionPendingReview, true},
		{"draft to approved", TransactionDraft, TransactionApproved, true},
		{"draft to rejected", TransactionDraft, TransactionRejected, true},
		{"pending_review to approved", TransactionPendingReview, TransactionApproved, true},
		{"pending_review to rejected", TransactionPendingReview, TransactionRejected, true},
		{"pending_review to draft", TransactionPendingReview, TransactionDraft, false},
		{"approved is terminal", TransactionApproved, TransactionPendingReview, false},
		{"approved cannot be rejected", TransactionApproved, TransactionRejected, false},
		{"rejected can be resubmitted", TransactionRejected, TransactionPendingReview, true},
		{"rejected cannot be approved directly", TransactionRejected, TransactionApproved, false},
		{"rejected cannot return to draft", TransactionRejected, TransactionDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionTransaction(tt.from, tt.to))
		})
	}
}

func TestTransactionApprovedIsTheOnlyTerminalState(t *testing.T) {
	all := []TransactionStatus{
		TransactionDraft,
		TransactionPendingReview,
		TransactionApproved,
		TransactionRejected,
	}

	rapid.Check(t, func(t *rapid.T) {
		to := rapid.SampledFrom(all).Draw(t, "to")
		assert.False(t, CanTransitionTransaction(TransactionApproved, to))
	})

	// A rejected transaction is not terminal, unlike a rejected membership request
	assert.True(t, CanTransitionTransaction(TransactionRejected, TransactionPendingReview))
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, MembershipDraft.IsValid())
	assert.True(t, MembershipRejected.IsValid())
	assert.False(t, MembershipStatus("unknown").IsValid())

	assert.True(t, TransactionPendingReview.IsValid())
	assert.False(t, TransactionStatus("unknown").IsValid())

	assert.True(t, TransactionIncome.IsValid())
	assert.True(t, TransactionExpense.IsValid())
	assert.False(t, TransactionType("transfer").IsValid())
}
