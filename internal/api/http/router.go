package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dblab/twitterclone/internal/api/http/handlers"
	"github.com/dblab/twitterclone/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Tweets    *handlers.TweetsHandler
	Follows   *handlers.FollowsHandler
	Favorites *handlers.FavoritesHandler
	Comments  *handlers.CommentsHandler
	Explores  *handlers.ExploresHandler
	Identity  *auth.IdentityMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.Identity.Handle)
	api.Post("/users", cfg.Users.Register)
	api.Post("/users/login", cfg.Users.Login)

	protected := api.Group("", auth.RequireAuthenticated())

	protected.Get("/admin/metrics", auth.RequireRole(auth.RoleAdmin), cfg.Health.Metrics)

	users := protected.Group("/users")
	users.Get("/me", cfg.Users.Me)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	tweets := protected.Group("/tweets")
	tweets.Get("/", cfg.Tweets.Timeline)
	tweets.Post("/", cfg.Tweets.Create)
	tweets.Get("/:id", cfg.Tweets.Get)
	tweets.Put("/:id", cfg.Tweets.Update)
	tweets.Delete("/:id", cfg.Tweets.Delete)

	follows := protected.Group("/follows")
	follows.Post("/:email", cfg.Follows.Follow)
	follows.Delete("/:id", cfg.Follows.Unfollow)

	favorites := protected.Group("/tweet/favorites")
	favorites.Get("/:tweetId", cfg.Favorites.List)
	favorites.Post("/:tweetId", cfg.Favorites.Like)
	favorites.Delete("/:id", cfg.Favorites.Unlike)

	comments := protected.Group("/comments")
	comments.Get("/:tweetId", cfg.Comments.List)
	comments.Post("/:tweetId", cfg.Comments.Add)
	comments.Put("/:commentId", cfg.Comments.Update)
	comments.Delete("/:commentId", cfg.Comments.Delete)

	explores := protected.Group("/explores")
	explores.Get("/", cfg.Explores.Saved)
	explores.Post("/", cfg.Explores.Save)
	explores.Post("/keywords", cfg.Explores.Search)
	explores.Delete("/:exploreId", cfg.Explores.Delete)
}
