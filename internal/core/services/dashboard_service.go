package services

import (
	"context"

	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/core/domain"
)

// DashboardService aggregates headline numbers for the back office
type DashboardService struct {
	userRepo    repositories.UserRepository
	requestRepo repositories.MembershipRequestRepository
	txService   *TransactionService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	requestRepo repositories.MembershipRequestRepository,
	txService *TransactionService,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		txService:   txService,
	}
}

// DashboardStats is the admin dashboard snapshot
type DashboardStats struct {
	TotalUsers       int64             `json:"total_users"`
	TotalMembers     int64             `json:"total_members"`
	PendingRequests  int64             `json:"pending_requests"`
	ApprovedRequests int64             `json:"approved_requests"`
	Finance          *FinancialSummary `json:"finance"`
}

// GetStats computes the dashboard snapshot. Requires financial authority
// because it embeds the financial summary.
func (s *DashboardService) GetStats(ctx context.Context, roles domain.RoleList) (*DashboardStats, error) {
	_, totalUsers, err := s.userRepo.List(ctx, repositories.UserFilter{}, 0, 1)
	if err != nil {
		return nil, err
	}

	_, totalMembers, err := s.userRepo.List(ctx, repositories.UserFilter{Role: domain.RoleMember, ActiveOnly: true}, 0, 1)
	if err != nil {
		return nil, err
	}

	pending, err := s.countRequests(ctx, domain.MembershipDraft, domain.MembershipInformationVerified, domain.MembershipPaymentRequired)
	if err != nil {
		return nil, err
	}

	approved, err := s.countRequests(ctx, domain.MembershipApproved)
	if err != nil {
		return nil, err
	}

	finance, err := s.txService.Summary(ctx, roles, nil, nil)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:       totalUsers,
		TotalMembers:     totalMembers,
		PendingRequests:  pending,
		ApprovedRequests: approved,
		Finance:          finance,
	}, nil
}

func (s *DashboardService) countRequests(ctx context.Context, statuses ...domain.MembershipStatus) (int64, error) {
	var total int64
	for _, status := range statuses {
		st := status
		_, count, err := s.requestRepo.List(ctx, &st, 0, 1)
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
