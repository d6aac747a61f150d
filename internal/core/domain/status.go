package domain

// MembershipStatus represents the membership request lifecycle state
type MembershipStatus string

const (
	MembershipDraft               MembershipStatus = "draft"
	MembershipInformationVerified MembershipStatus = "information_verified"
	MembershipPaymentRequired     MembershipStatus = "payment_required"
	MembershipApproved            MembershipStatus = "approved"
	MembershipRejected            MembershipStatus = "rejected"
)

// membershipTransitions maps each state to its permitted next states.
// Terminal states carry an explicit empty set so legality and terminality
// are a single table lookup.
var membershipTransitions = map[MembershipStatus][]MembershipStatus{
	MembershipDraft:               {MembershipInformationVerified, MembershipRejected},
	MembershipInformationVerified: {MembershipPaymentRequired, MembershipApproved, MembershipRejected},
	MembershipPaymentRequired:     {MembershipApproved, MembershipRejected},
	MembershipApproved:            {},
	MembershipRejected:            {},
}

// ActiveMembershipStatuses are the states that block a new request for the
// same user. A rejected request does not block re-application.
var ActiveMembershipStatuses = []MembershipStatus{
	MembershipDraft,
	MembershipInformationVerified,
	MembershipPaymentRequired,
	MembershipApproved,
}

// CanTransitionMembership reports whether from -> to is a legal membership
// request transition
func CanTransitionMembership(from, to MembershipStatus) bool {
	for _, next := range membershipTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValid reports whether the status is a known membership state
func (s MembershipStatus) IsValid() bool {
	_, ok := membershipTransitions[s]
	return ok
}

// TransactionType represents the direction of a financial transaction
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// IsValid reports whether the type is income or expense
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// TransactionStatus represents the financial transaction review state
type TransactionStatus string

const (
	TransactionDraft         TransactionStatus = "draft"
	TransactionPendingReview TransactionStatus = "pending_review"
	TransactionApproved      TransactionStatus = "approved"
	TransactionRejected      TransactionStatus = "rejected"
)

// transactionTransitions maps each review state to its permitted next states.
// Unlike membership requests, a rejected transaction may be re-submitted.
var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionDraft:         {TransactionPendingReview, TransactionApproved, TransactionRejected},
	TransactionPendingReview: {TransactionApproved, TransactionRejected},
	TransactionApproved:      {},
	TransactionRejected:      {TransactionPendingReview},
}

// CanTransitionTransaction reports whether from -> to is a legal financial
// transaction transition
func CanTransitionTransaction(from, to TransactionStatus) bool {
	for _, next := range transactionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValid reports whether the status is a known transaction state
func (s TransactionStatus) IsValid() bool {
	_, ok := transactionTransitions[s]
	return ok
}
