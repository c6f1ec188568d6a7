package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/models/db_models"
)

func TestFindByIdMissingUserIsNilNil(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.FindById(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	company := seedCompany(t, db, "Acme")
	seedUser(t, db, company.ID, "jdoe", db_models.RoleEmployee)

	user, err := repo.FindByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "jdoe", user.Username)

	missing, err := repo.FindByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListByCompanyAndRoleScopesAndFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	acme := seedCompany(t, db, "Acme")
	globex := seedCompany(t, db, "Globex")

	seedUser(t, db, acme.ID, "bob", db_models.RoleEmployee)
	inactive := seedUser(t, db, acme.ID, "carol", db_models.RoleEmployee)
	seedUser(t, db, acme.ID, "hr-anna", db_models.RoleHR)
	seedUser(t, db, globex.ID, "dave", db_models.RoleEmployee)

	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	all, err := repo.ListByCompanyAndRole(context.Background(), acme.ID, db_models.RoleEmployee, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// ordered by name
	assert.Equal(t, "bob", all[0].Username)
	assert.Equal(t, "carol", all[1].Username)

	active, err := repo.ListByCompanyAndRole(context.Background(), acme.ID, db_models.RoleEmployee, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "bob", active[0].Username)
}

func TestFindManyByIds(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	company := seedCompany(t, db, "Acme")

	a := seedUser(t, db, company.ID, "a", db_models.RoleEmployee)
	b := seedUser(t, db, company.ID, "b", db_models.RoleEmployee)
	seedUser(t, db, company.ID, "c", db_models.RoleEmployee)

	users, err := repo.FindManyByIds(context.Background(), []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
