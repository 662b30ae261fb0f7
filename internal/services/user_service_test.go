package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

func newUserService() (*UserService, *store.Memory) {
	mem := store.NewMemory()
	return NewUserService(mem, mem, mem), mem
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, mem := newUserService()

	pub, err := svc.Register(models.RegisterRequest{
		Name: "Ana", Email: "ana@example.mx", Password: "secreto123",
	})
	require.NoError(t, err)

	stored, ok := mem.User(pub.ID)
	require.True(t, ok)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "plaintext must never be stored")
	assert.NotEmpty(t, stored.PasswordHash)

	// and the hash round-trips through login
	logged, err := svc.Login("ana@example.mx", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, pub.ID, logged.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()
	_, err := svc.Register(models.RegisterRequest{Name: "Ana", Email: "ana@example.mx", Password: "secreto123"})
	require.NoError(t, err)

	_, err = svc.Register(models.RegisterRequest{Name: "Ana2", Email: "ANA@example.mx", Password: "otra456"})
	assert.True(t, apperr.IsConflict(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newUserService()
	_, err := svc.Register(models.RegisterRequest{Name: "Ana", Email: "ana@example.mx", Password: "secreto123"})
	require.NoError(t, err)

	_, err = svc.Login("ana@example.mx", "equivocada")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Login("nadie@example.mx", "secreto123")
	assert.True(t, apperr.IsValidation(err), "unknown email must fail the same way")
}

func TestAddresses_OwnershipCheck(t *testing.T) {
	svc, mem := newUserService()
	ana := mem.CreateUser(models.User{Name: "Ana", Email: "ana@example.mx"})
	luis := mem.CreateUser(models.User{Name: "Luis", Email: "luis@example.mx"})

	addr, err := svc.CreateAddress(models.CreateAddressRequest{
		UserID: ana.ID, Street: "Calle 1", Colony: "Centro", City: "CDMX",
		State: "CDMX", Country: "MX", ZipCode: "06000",
	})
	require.NoError(t, err)

	_, err = svc.Address(ana.ID, addr.ID)
	assert.NoError(t, err)

	_, err = svc.Address(luis.ID, addr.ID)
	assert.True(t, apperr.IsNotFound(err), "another user's address must look absent")
}

func TestFavorites_NoDuplicates(t *testing.T) {
	svc, _ := newUserService()

	first := svc.AddFavorite(1, 9)
	second := svc.AddFavorite(1, 9)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, svc.Favorites(1), 1)

	svc.RemoveFavorite(1, 9)
	assert.Empty(t, svc.Favorites(1))
}
