//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"procdesk/errors"
	"procdesk/storage"
)

type IUserRepository interface {
	CreateUser(email, hashedPassword string) (string, error)
	GetUserByEmail(email string) (User, bool, error)
}

// User is the reviewer identity behind workflow actions and the audit
// log's user field.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserRepository struct {
	store storage.Engine
}

func NewUserRepository(store storage.Engine) UserRepository {
	return UserRepository{store: store}
}

// CreateUser persists a new reviewer and returns the generated user ID.
func (r UserRepository) CreateUser(email, hashedPassword string) (string, error) {
	if _, ok, err := r.GetUserByEmail(email); err != nil {
		return "", err
	} else if ok {
		return "", errors.ErrUserAlreadyExists
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		Roles:        []string{"reviewer"},
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal user: %w", err)
	}
	err = r.store.Put(storage.CollectionUsers, storage.Record{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		Indexed: map[string]string{
			storage.IndexEmail: user.Email,
		},
		Data: data,
	})
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (r UserRepository) GetUserByEmail(email string) (User, bool, error) {
	records, err := r.store.GetAllByIndex(storage.CollectionUsers, storage.IndexEmail, email)
	if err != nil {
		return User{}, false, err
	}
	if len(records) == 0 {
		return User{}, false, nil
	}
	var user User
	if err := json.Unmarshal(records[0].Data, &user); err != nil {
		return User{}, false, fmt.Errorf("unmarshal user %s: %w", records[0].ID, err)
	}
	return user, true, nil
}
