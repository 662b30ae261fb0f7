package services

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

// UserService covers accounts, the address book and favorites. Passwords
// are stored as bcrypt hashes only.
type UserService struct {
	users     store.UserRepository
	addresses store.AddressRepository
	favorites store.FavoriteRepository
}

func NewUserService(users store.UserRepository, addresses store.AddressRepository, favorites store.FavoriteRepository) *UserService {
	return &UserService{users: users, addresses: addresses, favorites: favorites}
}

func (s *UserService) Register(req models.RegisterRequest) (models.PublicUser, error) {
	if _, exists := s.users.UserByEmail(req.Email); exists {
		return models.PublicUser{}, apperr.Conflict("email %s is already registered", req.Email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, errors.Wrap(err, "hash password")
	}
	user := s.users.CreateUser(models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	return user.Public(), nil
}

// Login deliberately reports the same error for unknown email and wrong
// password.
func (s *UserService) Login(email, password string) (models.PublicUser, error) {
	user, ok := s.users.UserByEmail(email)
	if !ok {
		return models.PublicUser{}, apperr.Validation("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.PublicUser{}, apperr.Validation("invalid credentials")
	}
	return user.Public(), nil
}

func (s *UserService) User(id int64) (models.User, error) {
	u, ok := s.users.User(id)
	if !ok {
		return models.User{}, apperr.NotFound("user %d not found", id)
	}
	return u, nil
}

// Addresses

func (s *UserService) Addresses(userID int64) []models.Address {
	return s.addresses.Addresses(userID)
}

func (s *UserService) Address(userID, addressID int64) (models.Address, error) {
	a, ok := s.addresses.Address(addressID)
	if !ok || a.UserID != userID {
		return models.Address{}, apperr.NotFound("address %d not found", addressID)
	}
	return a, nil
}

func (s *UserService) CreateAddress(req models.CreateAddressRequest) (models.Address, error) {
	if _, ok := s.users.User(req.UserID); !ok {
		return models.Address{}, apperr.NotFound("user %d not found", req.UserID)
	}
	return s.addresses.CreateAddress(models.Address{
		UserID:    req.UserID,
		Street:    req.Street,
		Colony:    req.Colony,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		ZipCode:   req.ZipCode,
		Reference: req.Reference,
	}), nil
}

// Favorites

func (s *UserService) Favorites(userID int64) []models.Favorite {
	return s.favorites.Favorites(userID)
}

func (s *UserService) AddFavorite(userID, productID int64) models.Favorite {
	return s.favorites.AddFavorite(userID, productID)
}

func (s *UserService) RemoveFavorite(userID, productID int64) {
	s.favorites.RemoveFavorite(userID, productID)
}
