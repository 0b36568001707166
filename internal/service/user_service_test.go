package service

import (
	"context"
	"testing"
	"time"

	"anandam/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Upsert_NewAccountDefaultsToCustomer(t *testing.T) {
	repo := new(MockUserRepository)
	audit := new(MockAuditService)
	svc := NewUserService(repo, audit, zerolog.Nop())

	repo.On("GetByID", mock.Anything, "u1").Return(nil, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleUser && !u.CreatedAt.IsZero()
	})).Return(nil)

	err := svc.Upsert(context.Background(), &model.User{ID: "u1", Name: "Ananya", Role: model.RoleAdmin})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserService_Upsert_KeepsExistingRole(t *testing.T) {
	repo := new(MockUserRepository)
	audit := new(MockAuditService)
	svc := NewUserService(repo, audit, zerolog.Nop())

	created := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	existing := &model.User{ID: "u1", Name: "Ananya", Role: model.RoleAdmin, CreatedAt: created}
	repo.On("GetByID", mock.Anything, "u1").Return(existing, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleAdmin && u.CreatedAt.Equal(created)
	})).Return(nil)

	// The body claims a customer role; the stored one wins.
	err := svc.Upsert(context.Background(), &model.User{ID: "u1", Name: "Ananya R", Role: model.RoleUser})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserService_Upsert_RequiresIDAndName(t *testing.T) {
	repo := new(MockUserRepository)
	audit := new(MockAuditService)
	svc := NewUserService(repo, audit, zerolog.Nop())

	assert.Error(t, svc.Upsert(context.Background(), &model.User{Name: "Ananya"}))
	assert.Error(t, svc.Upsert(context.Background(), &model.User{ID: "u1"}))
	repo.AssertNotCalled(t, "Upsert")
}

func TestUserService_GetByID_Missing(t *testing.T) {
	repo := new(MockUserRepository)
	audit := new(MockAuditService)
	svc := NewUserService(repo, audit, zerolog.Nop())

	repo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserService_SetRole_Audited(t *testing.T) {
	repo := new(MockUserRepository)
	audit := new(MockAuditService)
	svc := NewUserService(repo, audit, zerolog.Nop())

	repo.On("SetRole", mock.Anything, "u1", model.RoleAdmin).Return(nil)
	audit.On("Record", mock.Anything, "user.role_change", "a1", "Admin", mock.MatchedBy(func(meta map[string]any) bool {
		return meta["userId"] == "u1" && meta["role"] == "admin"
	})).Return(nil)

	err := svc.SetRole(context.Background(), "u1", model.RoleAdmin, "a1", "Admin")
	require.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestUserService_SetRole_RejectsUnknownRole(t *testing.T) {
	repo := new(MockUserRepository)
	audit := new(MockAuditService)
	svc := NewUserService(repo, audit, zerolog.Nop())

	err := svc.SetRole(context.Background(), "u1", model.Role("superuser"), "a1", "Admin")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "SetRole")
}
