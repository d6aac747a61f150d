package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email string, roles domain.RoleList) *models.User {
	t.Helper()
	dob := time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC)
	user := &models.User{
		Email:          email,
		FirstName:      "Ayesha",
		LastName:       "Rahman",
		ProfilePicture: "https://cdn.example.com/p.jpg",
		Phone:          "+8801700000000",
		Batch:          "D-78",
		DateOfBirth:    &dob,
		Company:        "Acme Ltd",
		Designation:    "Engineer",
		PassingYear:    2018,
		EducationLevel: "BSc",
		Roles:          roles,
		IsActive:       true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestApproveMembershipAssignsSequentialIDs(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeCounterRepo{})
	ctx := context.Background()

	first := seedUser(t, userRepo, "first@example.com", domain.RoleList{domain.RoleGuest})
	second := seedUser(t, userRepo, "second@example.com", domain.RoleList{domain.RoleGuest})

	approved, err := svc.ApproveMembership(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.MembershipID)
	assert.Equal(t, "M00001", *approved.MembershipID)
	assert.True(t, approved.Roles.Has(domain.RoleMember))

	approved, err = svc.ApproveMembership(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "M00002", *approved.MembershipID)
}

func TestApproveMembershipIsIdempotent(t *testing.T) {
	userRepo := newFakeUserRepo()
	counter := &fakeCounterRepo{}
	svc := NewUserService(userRepo, counter)
	ctx := context.Background()

	user := seedUser(t, userRepo, "member@example.com", domain.RoleList{domain.RoleGuest})

	once, err := svc.ApproveMembership(ctx, user.ID)
	require.NoError(t, err)
	firstID := *once.MembershipID

	twice, err := svc.ApproveMembership(ctx, user.ID)
	require.NoError(t, err)

	// Same ID, no duplicated role, no further counter draw
	assert.Equal(t, firstID, *twice.MembershipID)
	assert.Equal(t, 1, counter.value)

	memberCount := 0
	for _, role := range twice.Roles {
		if role == domain.RoleMember {
			memberCount++
		}
	}
	assert.Equal(t, 1, memberCount)
}

func TestApproveMembershipConcurrentUsersGetUniqueIDs(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeCounterRepo{})
	ctx := context.Background()

	const n = 20
	ids := make([]uint, n)
	for i := 0; i < n; i++ {
		user := seedUser(t, userRepo, string(rune('a'+i))+"@example.com", domain.RoleList{domain.RoleGuest})
		ids[i] = user.ID
	}

	var wg sync.WaitGroup
	results := make(chan string, n)
	for _, id := range ids {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			user, err := svc.ApproveMembership(ctx, userID)
			if err == nil && user.MembershipID != nil {
				results <- *user.MembershipID
			}
		}(id)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for id := range results {
		assert.False(t, seen[id], "membership ID %s allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestGrantRole(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeCounterRepo{})
	ctx := context.Background()

	user := seedUser(t, userRepo, "role@example.com", domain.RoleList{domain.RoleGuest})

	updated, err := svc.GrantRole(ctx, user.ID, domain.RoleReviewer)
	require.NoError(t, err)
	assert.True(t, updated.Roles.Has(domain.RoleReviewer))

	// Granting again is a no-op
	updated, err = svc.GrantRole(ctx, user.ID, domain.RoleReviewer)
	require.NoError(t, err)
	assert.Len(t, updated.Roles, 2)

	_, err = svc.GrantRole(ctx, user.ID, domain.Role("superuser"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.GrantRole(ctx, 999, domain.RoleMember)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfileAndSetActive(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeCounterRepo{})
	ctx := context.Background()

	user := seedUser(t, userRepo, "profile@example.com", domain.RoleList{domain.RoleGuest})

	company := "New Corp"
	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "New Corp", updated.Company)
	// Untouched fields survive
	assert.Equal(t, "Ayesha", updated.FirstName)

	deactivated, err := svc.SetActive(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}
