package handlers

import (
	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
	"tubetweet-server/internal/domain/comment"
	"tubetweet-server/internal/domain/dashboard"
	"tubetweet-server/internal/domain/like"
	"tubetweet-server/internal/domain/playlist"
	"tubetweet-server/internal/domain/subscription"
	"tubetweet-server/internal/domain/tweet"
	"tubetweet-server/internal/domain/user"
	"tubetweet-server/internal/domain/video"
)

// Services bundles the domain services the HTTP layer depends on.
type Services struct {
	User         *user.Service
	Video        *video.Service
	Tweet        *tweet.Service
	Comment      *comment.Service
	Like         *like.Service
	Playlist     *playlist.Service
	Subscription *subscription.Service
	Dashboard    *dashboard.Service
}

// Provider wires HTTP handlers.
type Provider struct {
	User         *UserHandler
	Video        *VideoHandler
	Tweet        *TweetHandler
	Comment      *CommentHandler
	Like         *LikeHandler
	Playlist     *PlaylistHandler
	Subscription *SubscriptionHandler
	Dashboard    *DashboardHandler
}

func NewProvider(cfg *config.Config, services Services, imageStore video.Storage, log zerolog.Logger) *Provider {
	return &Provider{
		User:         NewUserHandler(cfg, services.User, imageStore, log),
		Video:        NewVideoHandler(cfg, services.Video, log),
		Tweet:        NewTweetHandler(services.Tweet, log),
		Comment:      NewCommentHandler(services.Comment, log),
		Like:         NewLikeHandler(services.Like, log),
		Playlist:     NewPlaylistHandler(services.Playlist, log),
		Subscription: NewSubscriptionHandler(services.Subscription, log),
		Dashboard:    NewDashboardHandler(services.Dashboard, log),
	}
}
