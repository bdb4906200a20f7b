package handlers

import (
	"time"

	"rewear/internal/config"
	"rewear/internal/repos"
	"rewear/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler      *ProductHandler
	CartHandler         *CartHandler
	OrderHandler        *OrderHandler
	BlogHandler         *BlogHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler

	CartService *services.CartService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)
	blogRepo := repos.NewBlogRepo(db)
	notifRepo := repos.NewNotificationRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo,
		time.Duration(cfg.CartHoldMinutes)*time.Minute, cfg.ShippingFee, cfg.FreeShippingThreshold)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, cartSvc)
	blogSvc := services.NewBlogService(blogRepo)

	return &Deps{
		ProductHandler:      &ProductHandler{Catalog: catalogSvc, Prods: prodRepo},
		CartHandler:         &CartHandler{Cart: cartSvc},
		OrderHandler:        &OrderHandler{Order: orderSvc, Repo: orderRepo},
		BlogHandler:         &BlogHandler{Blog: blogSvc, Repo: blogRepo},
		NotificationHandler: &NotificationHandler{Repo: notifRepo},
		AdminHandler:        &AdminHandler{Users: userRepo, Orders: orderRepo},
		CartService:         cartSvc,
	}
}
