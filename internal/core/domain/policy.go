package domain

import "fmt"

// Role policies for financial transactions. Pure predicates over the caller's
// role set; a denial is always an ErrForbidden-wrapped error so the transport
// layer maps it to 403 rather than 404.

// CanCreateTransaction checks create eligibility by transaction type
func CanCreateTransaction(roles RoleList, txType TransactionType) error {
	switch txType {
	case TransactionIncome:
		if !roles.IsAdmin() {
			return fmt.Errorf("%w: only admins can create income transactions", ErrForbidden)
		}
	case TransactionExpense:
		if !roles.IsAdmin() && !roles.Has(RoleAccountant) {
			return fmt.Errorf("%w: only admins or accountants can create expense transactions", ErrForbidden)
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, txType)
	}
	return nil
}

// CanReviewTransaction checks review eligibility by transaction type.
// Accountants may review expenses; income review is admin-only.
func CanReviewTransaction(roles RoleList, txType TransactionType) error {
	if !roles.IsAdmin() && !roles.Has(RoleAccountant) {
		return fmt.Errorf("%w: only admins or accountants can review transactions", ErrForbidden)
	}
	if txType == TransactionIncome && !roles.IsAdmin() {
		return fmt.Errorf("%w: only admins can review income transactions", ErrForbidden)
	}
	return nil
}

// CanUpdateTransaction checks update eligibility. The creator may update
// while the transaction is not finalized; admins may update unconditionally.
func CanUpdateTransaction(roles RoleList, actorID, creatorID uint, status TransactionStatus) error {
	isAdmin := roles.IsAdmin()
	if !isAdmin && actorID != creatorID {
		return fmt.Errorf("%w: you do not have permission to update this transaction", ErrForbidden)
	}
	if !isAdmin && (status == TransactionApproved || status == TransactionRejected) {
		return ErrTransactionLocked
	}
	return nil
}

// CanDeleteTransaction checks delete eligibility. Admins may delete any
// transaction; the creator only while it is draft or rejected.
func CanDeleteTransaction(roles RoleList, actorID, creatorID uint, status TransactionStatus) error {
	if roles.IsAdmin() {
		return nil
	}
	if actorID != creatorID {
		return fmt.Errorf("%w: you do not have permission to delete this transaction", ErrForbidden)
	}
	if status != TransactionDraft && status != TransactionRejected {
		return ErrTransactionNotDeletable
	}
	return nil
}

// CanListAllTransactions reports whether the caller sees every transaction
// or only their own
func CanListAllTransactions(roles RoleList) bool {
	return roles.IsAdmin() || roles.Has(RoleAccountant)
}

// InitialTransactionStatus computes the status a new transaction starts in.
// Admin-created income is approved immediately; expenses always enter review.
func InitialTransactionStatus(txType TransactionType, roles RoleList) TransactionStatus {
	if txType == TransactionIncome && roles.IsAdmin() {
		return TransactionApproved
	}
	if txType == TransactionExpense {
		return TransactionPendingReview
	}
	return TransactionDraft
}
