package repos

import (
	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id,email,full_name,password_hash,role,is_active,created_at
	  FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id,email,full_name,password_hash,role,is_active,created_at
	  FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,email,full_name,password_hash,role,is_active)
	  VALUES(?,?,?,?,?,?)`,
		u.ID, u.Email, u.FullName, u.Hash, u.Role, u.IsActive)
	return err
}

type UserStats struct {
	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`
	Admins      int `json:"admins"`
}

func (r *UserRepo) Stats() (UserStats, error) {
	var s UserStats
	if err := r.DB.Get(&s.TotalUsers, `SELECT COUNT(*) FROM users`); err != nil {
		return s, err
	}
	if err := r.DB.Get(&s.ActiveUsers, `SELECT COUNT(*) FROM users WHERE is_active=1`); err != nil {
		return s, err
	}
	err := r.DB.Get(&s.Admins, `SELECT COUNT(*) FROM users WHERE role='admin'`)
	return s, err
}
