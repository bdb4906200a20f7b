package repos

import (
	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BlogRepo struct{ db *sqlx.DB }

func NewBlogRepo(db *sqlx.DB) *BlogRepo { return &BlogRepo{db: db} }

const blogCols = `id,slug,title,excerpt,content,cover_image,tags_json,views,likes,published,published_at`

func (r *BlogRepo) List(limit, offset int) ([]domain.BlogPost, error) {
	out := []domain.BlogPost{}
	err := r.db.Select(&out, `
	  SELECT `+blogCols+` FROM blog_posts
	  WHERE published = 1
	  ORDER BY published_at DESC
	  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *BlogRepo) Get(id string) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.Get(&p, `SELECT `+blogCols+` FROM blog_posts WHERE id=? AND published=1`, id)
	return p, err
}

func (r *BlogRepo) BySlug(slug string) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.Get(&p, `SELECT `+blogCols+` FROM blog_posts WHERE slug=? AND published=1`, slug)
	return p, err
}

func (r *BlogRepo) IncViews(id string) error {
	_, err := r.db.Exec(`UPDATE blog_posts SET views = views + 1 WHERE id=?`, id)
	return err
}

func (r *BlogRepo) IncLikes(id string) (int, error) {
	if _, err := r.db.Exec(`UPDATE blog_posts SET likes = likes + 1 WHERE id=? AND published=1`, id); err != nil {
		return 0, err
	}
	var likes int
	err := r.db.Get(&likes, `SELECT likes FROM blog_posts WHERE id=?`, id)
	return likes, err
}

type BlogStats struct {
	TotalPosts int `json:"total_posts"`
	TotalViews int `json:"total_views"`
	TotalLikes int `json:"total_likes"`
}

func (r *BlogRepo) Stats() (BlogStats, error) {
	var s BlogStats
	err := r.db.Get(&s, `
	  SELECT COUNT(*) AS totalposts,
	         COALESCE(SUM(views),0) AS totalviews,
	         COALESCE(SUM(likes),0) AS totallikes
	  FROM blog_posts WHERE published=1`)
	return s, err
}
