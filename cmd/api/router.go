package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	interaction "github.com/vistream/vistream/cmd/api/handlers/interaction"
	relation "github.com/vistream/vistream/cmd/api/handlers/relation"
	user "github.com/vistream/vistream/cmd/api/handlers/user"
	video "github.com/vistream/vistream/cmd/api/handlers/video"
	"github.com/vistream/vistream/pkg/jwt"
)

func register(r *server.Hertz) {
	v1 := r.Group("/api/v1")
	authRequired := jwt.AuthMiddleware.MiddlewareFunc()

	auth := v1.Group("/auth")
	auth.POST("/register", user.Register)
	auth.POST("/login", jwt.AuthMiddleware.LoginHandler)
	auth.GET("/refresh", jwt.AuthMiddleware.RefreshHandler)
	auth.GET("/me", authRequired, user.Me)
	auth.PUT("/profile", authRequired, user.UpdateProfile)
	auth.POST("/avatar", authRequired, user.UploadAvatar)
	auth.PUT("/change-password", authRequired, user.ChangePassword)

	users := v1.Group("/users")
	users.GET("/me/liked-videos", authRequired, interaction.ListLikedVideos)
	users.GET("/me/watch-history", authRequired, user.GetWatchHistory)
	users.DELETE("/me/watch-history", authRequired, user.ClearWatchHistory)
	users.GET("/:username", jwt.OptionalAuth(), user.GetProfile)
	users.GET("/:username/videos", jwt.OptionalAuth(), video.ChannelVideos)

	videos := v1.Group("/videos")
	videos.GET("", video.Feed)
	videos.GET("/trending", video.Trending)
	videos.GET("/search", video.Search)
	videos.GET("/category/:category", video.FeedByCategory)
	videos.POST("/upload", authRequired, video.Publish)
	videos.GET("/:video_id", jwt.OptionalAuth(), video.GetVideo)
	videos.PUT("/:video_id", authRequired, video.UpdateVideo)
	videos.DELETE("/:video_id", authRequired, video.DeleteVideo)
	videos.POST("/:video_id/like", authRequired, interaction.LikeVideo)
	videos.POST("/:video_id/dislike", authRequired, interaction.DislikeVideo)
	videos.POST("/:video_id/view", jwt.OptionalAuth(), video.RecordView)

	comments := v1.Group("/comments")
	comments.GET("/video/:video_id", interaction.ListComments)
	comments.POST("/video/:video_id", authRequired, interaction.CreateComment)
	comments.PUT("/:comment_id", authRequired, interaction.EditComment)
	comments.DELETE("/:comment_id", authRequired, interaction.DeleteComment)
	comments.POST("/:comment_id/like", authRequired, interaction.ToggleCommentLike)

	channels := v1.Group("/channels")
	channels.POST("/:channel_id/subscribe", authRequired, relation.Subscribe)
	channels.DELETE("/:channel_id/unsubscribe", authRequired, relation.Unsubscribe)
	channels.GET("/:channel_id/subscribers", relation.ListSubscribers)
	channels.GET("/:channel_id/subscription-check", authRequired, relation.SubscriptionStatus)

	v1.GET("/subscriptions/mine", authRequired, relation.ListSubscriptions)
}
