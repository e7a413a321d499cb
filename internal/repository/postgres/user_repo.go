package postgres

import (
	"context"
	"fmt"

	"tabreed-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, email, password_hash, role, first_name, last_name, phone, created_at, updated_at"

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, first_name, last_name, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())`,
		user.ID, user.Email, user.PasswordHash, user.Role, user.FirstName, user.LastName, user.Phone)
	return err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := q(ctx, r.db).QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE LOWER(email) = LOWER($1)", userColumns), email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := q(ctx, r.db).QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns), id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if isNoRows(err) {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetAll(ctx context.Context, limit, offset int) ([]*domain.User, int64, error) {
	var total int64
	if err := q(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q(ctx, r.db).Query(ctx,
		fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2", userColumns), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, &u)
	}
	return users, total, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, phone string) (*domain.User, error) {
	_, err := q(ctx, r.db).Exec(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, phone = $4, updated_at = NOW()
		WHERE id = $1`, id, firstName, lastName, phone)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// --- Addresses ---

func (r *userRepository) AddAddress(ctx context.Context, addr *domain.Address) error {
	if addr.ID == "" {
		addr.ID = uuid.New().String()
	}
	if addr.IsDefault {
		if err := r.clearDefault(ctx, addr.UserID); err != nil {
			return err
		}
	}
	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO addresses (id, user_id, label, phone, first_name, last_name,
			city, district, address_line, landmark, is_default, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())`,
		addr.ID, addr.UserID, addr.Label, addr.Phone, addr.FirstName, addr.LastName,
		addr.City, addr.District, addr.AddressLine, addr.Landmark, addr.IsDefault)
	return err
}

func (r *userRepository) UpdateAddress(ctx context.Context, addr *domain.Address) error {
	if addr.IsDefault {
		if err := r.clearDefault(ctx, addr.UserID); err != nil {
			return err
		}
	}
	tag, err := q(ctx, r.db).Exec(ctx, `
		UPDATE addresses SET label = $3, phone = $4, first_name = $5, last_name = $6,
			city = $7, district = $8, address_line = $9, landmark = $10, is_default = $11
		WHERE id = $1 AND user_id = $2`,
		addr.ID, addr.UserID, addr.Label, addr.Phone, addr.FirstName, addr.LastName,
		addr.City, addr.District, addr.AddressLine, addr.Landmark, addr.IsDefault)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("address not found")
	}
	return nil
}

func (r *userRepository) clearDefault(ctx context.Context, userID string) error {
	_, err := q(ctx, r.db).Exec(ctx,
		"UPDATE addresses SET is_default = FALSE WHERE user_id = $1", userID)
	return err
}

func (r *userRepository) GetAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	rows, err := q(ctx, r.db).Query(ctx, `
		SELECT id, user_id, label, phone, first_name, last_name,
			city, district, address_line, landmark, is_default, created_at
		FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addrs []domain.Address
	for rows.Next() {
		var a domain.Address
		err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Phone, &a.FirstName, &a.LastName,
			&a.City, &a.District, &a.AddressLine, &a.Landmark, &a.IsDefault, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (r *userRepository) DeleteAddress(ctx context.Context, id, userID string) error {
	_, err := q(ctx, r.db).Exec(ctx,
		"DELETE FROM addresses WHERE id = $1 AND user_id = $2", id, userID)
	return err
}

// --- Refresh Tokens ---

func (r *userRepository) SaveRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at, created_at, revoked, device)
		VALUES ($1,$2,$3,NOW(),FALSE,$4)`,
		token.Token, token.UserID, token.ExpiresAt, token.Device)
	return err
}

func (r *userRepository) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := q(ctx, r.db).QueryRow(ctx, `
		SELECT token, user_id, expires_at, created_at, revoked, device
		FROM refresh_tokens WHERE token = $1`, token).
		Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt, &t.Revoked, &t.Device)
	if isNoRows(err) {
		return nil, fmt.Errorf("refresh token not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *userRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := q(ctx, r.db).Exec(ctx,
		"UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1", token)
	return err
}
