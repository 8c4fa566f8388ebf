package v1

import (
	"github.com/gin-gonic/gin"

	"tubetweet-server/internal/interfaces/httpserver/handlers"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	verifier middlewares.AccessVerifier
}

func NewRoutes(provider *handlers.Provider, verifier middlewares.AccessVerifier) *Routes {
	return &Routes{handlers: provider, verifier: verifier}
}

// Register attaches all routes under the /api/v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/api/v1")
	authRequired := middlewares.RequireAuth(r.verifier)
	authOptional := middlewares.OptionalAuth(r.verifier)

	users := group.Group("/users")
	{
		users.POST("/register", r.handlers.User.Register)
		users.POST("/login", r.handlers.User.Login)
		users.POST("/refresh-token", r.handlers.User.RefreshToken)
		users.POST("/logout", authRequired, r.handlers.User.Logout)
		users.GET("/current-user", authRequired, r.handlers.User.CurrentUser)
		users.POST("/change-password", authRequired, r.handlers.User.ChangePassword)
		users.PATCH("/update-account", authRequired, r.handlers.User.UpdateAccount)
		users.PATCH("/avatar", authRequired, r.handlers.User.UpdateAvatar)
		users.PATCH("/cover-image", authRequired, r.handlers.User.UpdateCoverImage)
		users.GET("/channel/:username", authOptional, r.handlers.User.Channel)
	}

	video := group.Group("/video")
	{
		video.POST("/", authRequired, r.handlers.Video.Upload)
		video.GET("/videoall-video", authOptional, r.handlers.Video.Feed)
		video.GET("/video-by-id/:id", authOptional, r.handlers.Video.GetByID)
		video.GET("/get-user-by-video-id/:id", r.handlers.Video.OwnerByVideoID)
		video.GET("/search", authOptional, r.handlers.Video.Search)
		video.PATCH("/:id", authRequired, r.handlers.Video.Update)
		video.PATCH("/toggle-publish/:id", authRequired, r.handlers.Video.TogglePublish)
		video.DELETE("/:id", authRequired, r.handlers.Video.Delete)
	}

	tweet := group.Group("/tweet")
	{
		tweet.POST("/create-tweet", authRequired, r.handlers.Tweet.Create)
		tweet.GET("/getAll-tweet", authOptional, r.handlers.Tweet.ListAll)
		tweet.GET("/user/:userId", authOptional, r.handlers.Tweet.ListByUser)
		tweet.PATCH("/update/:id", authRequired, r.handlers.Tweet.Update)
		tweet.DELETE("/delete-tweet/:id", authRequired, r.handlers.Tweet.Delete)
	}

	comment := group.Group("/comment")
	{
		comment.POST("/add-comment/:videoId", authRequired, r.handlers.Comment.Add)
		comment.GET("/get-video-comments/:videoId", r.handlers.Comment.ListByVideo)
		comment.PATCH("/update/:id", authRequired, r.handlers.Comment.Update)
		comment.DELETE("/delete/:id", authRequired, r.handlers.Comment.Delete)
	}

	like := group.Group("/like", authRequired)
	{
		like.POST("/toggle-video/:id", r.handlers.Like.ToggleVideo)
		like.POST("/toggle-comment/:id", r.handlers.Like.ToggleComment)
		like.POST("/toggle-tweet/:id", r.handlers.Like.ToggleTweet)
		like.GET("/liked-videos", r.handlers.Like.LikedVideos)
	}

	playlist := group.Group("/playlist")
	{
		playlist.POST("/", authRequired, r.handlers.Playlist.Create)
		playlist.GET("/:playlistId", authRequired, r.handlers.Playlist.Get)
		playlist.PATCH("/:playlistId", authRequired, r.handlers.Playlist.Update)
		playlist.DELETE("/:playlistId", authRequired, r.handlers.Playlist.Delete)
		playlist.GET("/video-playlist/:playlistId", authOptional, r.handlers.Playlist.Videos)
		playlist.PATCH("/add/:videoId/:playlistId", authRequired, r.handlers.Playlist.AddVideo)
		playlist.DELETE("/remove/:videoId/:playlistId", authRequired, r.handlers.Playlist.RemoveVideo)
		playlist.GET("/user/:userId", authRequired, r.handlers.Playlist.ListByUser)
	}

	subscription := group.Group("/subscription")
	{
		subscription.POST("/toggle-subs/:channelId", authRequired, r.handlers.Subscription.Toggle)
		subscription.GET("/subscribers/:channelId", r.handlers.Subscription.Subscribers)
		subscription.GET("/subscribed/:subscriberId", r.handlers.Subscription.SubscribedChannels)
	}

	dashboard := group.Group("/dashboard", authRequired)
	{
		dashboard.GET("/stats", r.handlers.Dashboard.Stats)
		dashboard.GET("/videos", r.handlers.Dashboard.Videos)
	}
}
