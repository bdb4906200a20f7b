package services

import (
	"rewear/internal/domain"
	"rewear/internal/repos"
)

type BlogService struct {
	Posts *repos.BlogRepo
}

func NewBlogService(posts *repos.BlogRepo) *BlogService { return &BlogService{Posts: posts} }

func (s *BlogService) List(page, perPage int) ([]domain.BlogPost, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}
	posts, err := s.Posts.List(perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Hydrate()
		posts[i].Content = "" // list view stays light
	}
	return posts, nil
}

// Get returns a post by id and bumps its view counter.
func (s *BlogService) Get(id string) (domain.BlogPost, error) {
	p, err := s.Posts.Get(id)
	if err != nil {
		return domain.BlogPost{}, err
	}
	_ = s.Posts.IncViews(p.ID)
	p.Views++
	p.Hydrate()
	return p, nil
}

func (s *BlogService) BySlug(slug string) (domain.BlogPost, error) {
	p, err := s.Posts.BySlug(slug)
	if err != nil {
		return domain.BlogPost{}, err
	}
	_ = s.Posts.IncViews(p.ID)
	p.Views++
	p.Hydrate()
	return p, nil
}

func (s *BlogService) Like(id string) (int, error) {
	return s.Posts.IncLikes(id)
}
