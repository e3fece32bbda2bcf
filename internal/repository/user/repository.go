package user

import (
	"homework-bot/internal/models"
	"homework-bot/internal/repository"

	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateOrUpdate(user *models.User) error {
	query := `
		INSERT INTO bot.users (telegram_id, first_name, last_name, username, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			username = EXCLUDED.username,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	return r.db.QueryRow(
		query,
		user.TelegramID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.RegisteredAt,
	).Scan(&user.ID)
}

func (r *userRepository) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM bot.users WHERE telegram_id = $1`
	err := r.db.Get(&user, query, telegramID)
	return &user, err
}

func (r *userRepository) UpdateProfile(telegramID int64, fullName, email string) error {
	query := `
		UPDATE bot.users
		SET full_name = $1, email = $2, updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = $3
	`
	_, err := r.db.Exec(query, fullName, email, telegramID)
	return err
}

func (r *userRepository) Delete(telegramID int64) error {
	query := `DELETE FROM bot.users WHERE telegram_id = $1`
	_, err := r.db.Exec(query, telegramID)
	return err
}

func (r *userRepository) GetAllTelegramIDs() ([]int64, error) {
	var ids []int64
	query := `SELECT telegram_id FROM bot.users ORDER BY registered_at`

	err := r.db.Select(&ids, query)
	if err != nil {
		return nil, err
	}

	return ids, nil
}
