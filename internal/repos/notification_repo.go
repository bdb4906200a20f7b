package repos

import (
	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) ListByUser(userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	out := []domain.Notification{}
	err := r.db.Select(&out, `
	  SELECT id,user_id,kind,title,body,read,created_at
	  FROM notifications WHERE user_id=?
	  ORDER BY created_at DESC LIMIT ?`, userID, limit)
	return out, err
}

func (r *NotificationRepo) Create(n domain.Notification) error {
	_, err := r.db.Exec(`
	  INSERT INTO notifications(id,user_id,kind,title,body,read)
	  VALUES(?,?,?,?,?,0)`,
		n.ID, n.UserID, n.Kind, n.Title, n.Body)
	return err
}

// MarkRead is scoped to the owner so users cannot touch others' rows.
func (r *NotificationRepo) MarkRead(id, userID string) (bool, error) {
	res, err := r.db.Exec(`UPDATE notifications SET read=1 WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type NotificationStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

func (r *NotificationRepo) Stats() (NotificationStats, error) {
	var s NotificationStats
	if err := r.db.Get(&s.Total, `SELECT COUNT(*) FROM notifications`); err != nil {
		return s, err
	}
	err := r.db.Get(&s.Unread, `SELECT COUNT(*) FROM notifications WHERE read=0`)
	return s, err
}
