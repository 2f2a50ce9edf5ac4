package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/internal/user/repository"
	"github.com/kapelokal/pos/pkg/apperror"
	"github.com/kapelokal/pos/pkg/auth"
)

func newTestRepo(t *testing.T) domain.UserRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return repository.NewGormUserRepository(db)
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewCreateUserHandler(repo)

	user, err := handler.Handle(context.Background(), CreateUserCommand{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "sekret-123",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "sekret-123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "sekret-123"))
	assert.True(t, user.IsActive)
}

func TestCreateUserDefaultsToCashier(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewCreateUserHandler(repo)

	user, err := handler.Handle(context.Background(), CreateUserCommand{
		Name:     "Pedro",
		Email:    "pedro@example.com",
		Password: "sekret-123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCashier, user.Role)
}

func TestCreateUserValidation(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewCreateUserHandler(repo)

	cases := []CreateUserCommand{
		{Email: "a@example.com", Password: "sekret-123"},          // missing name
		{Name: "A", Password: "sekret-123"},                       // missing email
		{Name: "A", Email: "a@example.com", Password: "short"},    // weak password
		{Name: "A", Email: "a@example.com", Password: "sekret-123", Role: "owner"}, // bad role
	}
	for _, cmd := range cases {
		_, err := handler.Handle(context.Background(), cmd)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewCreateUserHandler(repo)

	cmd := CreateUserCommand{Name: "Maria", Email: "maria@example.com", Password: "sekret-123"}
	_, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newTestRepo(t)
	_, err := NewCreateUserHandler(repo).Handle(context.Background(), CreateUserCommand{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "sekret-123",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	result, err := NewLoginUserHandler(repo).Handle(context.Background(), LoginUserCommand{
		Email:    "maria@example.com",
		Password: "sekret-123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentialsAndDisabledAccounts(t *testing.T) {
	repo := newTestRepo(t)
	created, err := NewCreateUserHandler(repo).Handle(context.Background(), CreateUserCommand{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "sekret-123",
	})
	require.NoError(t, err)

	login := NewLoginUserHandler(repo)

	_, err = login.Handle(context.Background(), LoginUserCommand{Email: "maria@example.com", Password: "wrong"})
	require.Error(t, err)

	_, err = login.Handle(context.Background(), LoginUserCommand{Email: "nobody@example.com", Password: "sekret-123"})
	require.Error(t, err)

	created.IsActive = false
	require.NoError(t, repo.Update(context.Background(), created))

	_, err = login.Handle(context.Background(), LoginUserCommand{Email: "maria@example.com", Password: "sekret-123"})
	require.Error(t, err)
}

func TestUpdateUserPartialFields(t *testing.T) {
	repo := newTestRepo(t)
	created, err := NewCreateUserHandler(repo).Handle(context.Background(), CreateUserCommand{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "sekret-123",
	})
	require.NoError(t, err)

	updated, err := NewUpdateUserHandler(repo).Handle(context.Background(), UpdateUserCommand{
		ID:   created.ID,
		Name: "Maria Clara",
		Role: domain.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Clara", updated.Name)
	assert.Equal(t, "maria@example.com", updated.Email)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	// Password untouched
	assert.True(t, auth.CheckPassword(updated.Password, "sekret-123"))
}
