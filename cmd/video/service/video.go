package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	interactiondb "github.com/vistream/vistream/cmd/interaction/dal/db"
	interaction "github.com/vistream/vistream/cmd/interaction/service"
	"github.com/vistream/vistream/cmd/model"
	relationdb "github.com/vistream/vistream/cmd/relation/dal/db"
	userdb "github.com/vistream/vistream/cmd/user/dal/db"
	"github.com/vistream/vistream/cmd/video/dal/db"
	"github.com/vistream/vistream/cmd/video/infras/es"
	"github.com/vistream/vistream/pkg/cache"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/mq"
	"github.com/vistream/vistream/pkg/oss"
	"github.com/vistream/vistream/pkg/pagination"
	"github.com/vistream/vistream/pkg/utils"
)

type VideoService struct {
	ctx context.Context
}

func NewVideoService(ctx context.Context) *VideoService {
	return &VideoService{ctx: ctx}
}

// producer publishes watch events for asynchronous history writes. When
// nil, history is written inline.
var producer *mq.Producer

func SetProducer(p *mq.Producer) {
	producer = p
}

// VideoCard is the listing projection: the video row plus its author.
type VideoCard struct {
	*model.Video
	Author *ChannelOwner `json:"author"`
}

type ChannelOwner struct {
	UserId      int64  `json:"user_id"`
	Username    string `json:"username"`
	ChannelName string `json:"channel_name"`
	AvatarUrl   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
}

// VideoDetail is the watch-page projection: the card plus engagement
// state for the viewer.
type VideoDetail struct {
	*VideoCard
	Likes           int64  `json:"likes"`
	Dislikes        int64  `json:"dislikes"`
	CommentCount    int64  `json:"comment_count"`
	SubscriberCount int64  `json:"subscriber_count"`
	UserReaction    string `json:"user_reaction"`
	IsSubscribed    bool   `json:"is_subscribed"`
}

// PublishRequest carries the metadata for a new upload; the media itself
// arrives as a temp file on local disk.
type PublishRequest struct {
	UserId      int64
	FilePath    string
	Title       string
	Description string
	Category    string
	Tags        []string
	Visibility  string
}

func validatePublish(req *PublishRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errno.ParamErr.WithMessage("title is required")
	}
	if len(req.Title) > constants.MaxTitleLength {
		return errno.ParamErr.WithMessage("title too long")
	}
	if len(req.Description) > constants.MaxDescriptionLength {
		return errno.ParamErr.WithMessage("description too long")
	}
	if !constants.IsValidCategory(req.Category) {
		return errno.ParamErr.WithMessage("unknown category")
	}
	if req.Visibility == "" {
		req.Visibility = constants.VisibilityPublic
	}
	if !constants.IsValidVisibility(req.Visibility) {
		return errno.ParamErr.WithMessage("unknown visibility")
	}
	return nil
}

// Publish probes the uploaded file, stores media in object storage and
// creates the video row. The row is written first so object names can
// carry the video id.
func (s *VideoService) Publish(req *PublishRequest) (*model.Video, error) {
	if err := validatePublish(req); err != nil {
		return nil, err
	}
	duration, err := utils.ProbeDuration(req.FilePath)
	if err != nil {
		return nil, errno.ParamErr.WithMessage("unreadable video file")
	}

	now := time.Now().Format(constants.TimeFormat)
	video := &model.Video{
		UserId:      req.UserId,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Duration:    duration,
		Tags:        strings.Join(req.Tags, ","),
		Category:    req.Category,
		Visibility:  req.Visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.InsertVideo(s.ctx, video); err != nil {
		return nil, errno.ConvertErr(err)
	}

	vid := fmt.Sprint(video.VideoId)
	videoUrl, err := oss.UploadVideo(s.ctx, req.FilePath, vid)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	video.VideoUrl = videoUrl

	thumbDir, err := os.MkdirTemp("", "thumb-"+uuid.NewString())
	if err == nil {
		defer os.RemoveAll(thumbDir)
		if thumbPath, err := utils.ExtractThumbnail(req.FilePath, thumbDir); err == nil {
			if coverUrl, err := oss.UploadThumbnail(s.ctx, thumbPath, vid); err == nil {
				video.CoverUrl = coverUrl
			} else {
				logrus.Errorf("thumbnail upload for video %d: %v", video.VideoId, err)
			}
		} else {
			logrus.Errorf("thumbnail extraction for video %d: %v", video.VideoId, err)
		}
	}

	if err := db.UpdateVideoFields(s.ctx, video.VideoId, map[string]interface{}{
		"video_url": video.VideoUrl,
		"cover_url": video.CoverUrl,
	}); err != nil {
		return nil, errno.ConvertErr(err)
	}
	es.IndexVideo(s.ctx, video)
	logrus.Infof("user %d published video %d (%ds)", req.UserId, video.VideoId, duration)
	return video, nil
}

// Update edits metadata on the caller's own video.
func (s *VideoService) Update(videoId, userId int64, updates map[string]interface{}) (*model.Video, error) {
	video, err := s.ownedVideo(videoId, userId)
	if err != nil {
		return nil, err
	}
	if title, ok := updates["title"].(string); ok {
		if strings.TrimSpace(title) == "" || len(title) > constants.MaxTitleLength {
			return nil, errno.ParamErr.WithMessage("invalid title")
		}
	}
	if desc, ok := updates["description"].(string); ok && len(desc) > constants.MaxDescriptionLength {
		return nil, errno.ParamErr.WithMessage("description too long")
	}
	if category, ok := updates["category"].(string); ok && !constants.IsValidCategory(category) {
		return nil, errno.ParamErr.WithMessage("unknown category")
	}
	if visibility, ok := updates["visibility"].(string); ok && !constants.IsValidVisibility(visibility) {
		return nil, errno.ParamErr.WithMessage("unknown visibility")
	}
	updates["updated_at"] = time.Now().Format(constants.TimeFormat)
	if err := db.UpdateVideoFields(s.ctx, videoId, updates); err != nil {
		return nil, errno.ConvertErr(err)
	}
	video, err = db.GetVideo(s.ctx, videoId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	es.IndexVideo(s.ctx, video)
	return video, nil
}

// Delete removes the caller's video together with every comment, comment
// like and reaction attached to it, plus the stored media and the search
// document.
func (s *VideoService) Delete(videoId, userId int64) error {
	if _, err := s.ownedVideo(videoId, userId); err != nil {
		return err
	}

	commentIds, err := interactiondb.GetCommentIdsByVideo(s.ctx, videoId)
	if err != nil {
		return errno.ConvertErr(err)
	}
	if err := interactiondb.DeleteCommentLikesByComments(s.ctx, commentIds); err != nil {
		return errno.ConvertErr(err)
	}
	if err := interactiondb.DeleteCommentsByVideo(s.ctx, videoId); err != nil {
		return errno.ConvertErr(err)
	}
	if err := interactiondb.DeleteReactionsByVideo(s.ctx, videoId); err != nil {
		return errno.ConvertErr(err)
	}
	if err := db.DeleteVideo(s.ctx, videoId); err != nil {
		return errno.ConvertErr(err)
	}
	cache.InvalidateVideoReactions(s.ctx, videoId)
	es.DeleteVideoDoc(s.ctx, videoId)
	oss.DeleteVideoObjects(s.ctx, fmt.Sprint(videoId))
	logrus.Infof("video %d deleted by owner %d", videoId, userId)
	return nil
}

func (s *VideoService) ownedVideo(videoId, userId int64) (*model.Video, error) {
	video, err := db.GetVideo(s.ctx, videoId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	if video == nil {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	if video.UserId != userId {
		return nil, errno.ForbiddenErr.WithMessage("not the video owner")
	}
	return video, nil
}

// Get builds the watch page: metadata, author, derived counters and the
// viewer's own engagement state. viewerId is 0 for anonymous requests.
func (s *VideoService) Get(videoId, viewerId int64) (*VideoDetail, error) {
	video, err := db.GetVideo(s.ctx, videoId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	if video == nil || video.IsBlocked {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	if video.Visibility == constants.VisibilityPrivate && video.UserId != viewerId {
		return nil, errno.ForbiddenErr.WithMessage("video is private")
	}

	cards, err := s.buildCards([]*model.Video{video})
	if err != nil {
		return nil, err
	}
	likeSvc := interaction.NewLikeService(s.ctx)
	likes, dislikes, err := likeSvc.VideoReactionCounts(videoId)
	if err != nil {
		return nil, err
	}
	commentCount, err := interactiondb.CountCommentsByVideo(s.ctx, videoId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	subscriberCount, err := relationdb.CountSubscribers(s.ctx, video.UserId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}

	detail := &VideoDetail{
		VideoCard:       cards[0],
		Likes:           likes,
		Dislikes:        dislikes,
		CommentCount:    commentCount,
		SubscriberCount: subscriberCount,
	}
	if viewerId != 0 {
		if detail.UserReaction, err = likeSvc.UserReaction(videoId, viewerId); err != nil {
			return nil, err
		}
		if detail.IsSubscribed, err = relationdb.IsSubscribed(s.ctx, viewerId, video.UserId); err != nil {
			return nil, errno.ConvertErr(err)
		}
	}
	return detail, nil
}

// RecordView bumps the view counter and hands the watch-history write to
// the queue. Views always count; there is no per-viewer de-duplication.
func (s *VideoService) RecordView(videoId, viewerId int64) (int64, error) {
	video, err := db.GetVideo(s.ctx, videoId)
	if err != nil {
		return 0, errno.ConvertErr(err)
	}
	if video == nil || video.IsBlocked {
		return 0, errno.NotFoundErr.WithMessage("video not found")
	}
	count, err := db.IncrementVisitCount(s.ctx, videoId)
	if err != nil {
		return 0, errno.ConvertErr(err)
	}
	if viewerId != 0 {
		s.appendHistory(viewerId, videoId)
	}
	return count, nil
}

func (s *VideoService) appendHistory(viewerId, videoId int64) {
	watchedAt := time.Now().Format(constants.TimeFormat)
	if producer != nil {
		event := &mq.WatchEvent{
			UserID:    viewerId,
			VideoID:   videoId,
			WatchedAt: watchedAt,
			Timestamp: time.Now().Unix(),
			EventID:   uuid.NewString(),
		}
		if err := producer.PublishWatchEvent(s.ctx, event); err == nil {
			return
		} else {
			logrus.Errorf("watch event publish for video %d: %v", videoId, err)
		}
	}
	entry := &model.WatchHistory{UserId: viewerId, VideoId: videoId, WatchedAt: watchedAt}
	if err := userdb.AddWatchHistory(s.ctx, entry); err != nil {
		logrus.Errorf("watch history write for user %d: %v", viewerId, err)
	}
}

func (s *VideoService) Feed(p pagination.Params) ([]*VideoCard, pagination.Meta, error) {
	videos, total, err := db.ListPublic(s.ctx, p)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	cards, err := s.buildCards(videos)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(p, total), nil
}

func (s *VideoService) FeedByCategory(category string, p pagination.Params) ([]*VideoCard, pagination.Meta, error) {
	if !constants.IsValidCategory(category) {
		return nil, pagination.Meta{}, errno.ParamErr.WithMessage("unknown category")
	}
	videos, total, err := db.ListByCategory(s.ctx, category, p)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	cards, err := s.buildCards(videos)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(p, total), nil
}

// ChannelVideos lists a channel's uploads, addressed by the owner's
// username. The owner sees private and unlisted videos as well.
func (s *VideoService) ChannelVideos(username string, viewerId int64, p pagination.Params) ([]*VideoCard, pagination.Meta, error) {
	owner, err := userdb.GetUserByUsername(s.ctx, username)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	if owner == nil {
		return nil, pagination.Meta{}, errno.NotFoundErr.WithMessage("channel not found")
	}
	videos, total, err := db.ListByOwner(s.ctx, owner.UserId, viewerId == owner.UserId, p)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	cards, err := s.buildCards(videos)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(p, total), nil
}

func (s *VideoService) Trending() ([]*VideoCard, error) {
	videos, err := db.Trending(s.ctx, constants.TrendingLimit)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	return s.buildCards(videos)
}

// Search prefers elasticsearch relevance ranking and falls back to a
// LIKE scan when the search backend is down.
func (s *VideoService) Search(keyword, category string, p pagination.Params) ([]*VideoCard, pagination.Meta, error) {
	if category != "" && category != "all" && !constants.IsValidCategory(category) {
		return nil, pagination.Meta{}, errno.ParamErr.WithMessage("unknown category")
	}
	var (
		videos []*model.Video
		total  int64
		err    error
	)
	if es.Available() {
		var ids []int64
		ids, total, err = es.Search(s.ctx, keyword, category, p)
		if err == nil {
			videos, err = s.hydrateOrdered(ids)
		}
	}
	if !es.Available() || err != nil {
		if err != nil {
			logrus.Errorf("search fallback for %q: %v", keyword, err)
		}
		videos, total, err = db.SearchLike(s.ctx, keyword, category, p)
		if err != nil {
			return nil, pagination.Meta{}, errno.ConvertErr(err)
		}
	}
	cards, err := s.buildCards(videos)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(p, total), nil
}

func (s *VideoService) hydrateOrdered(ids []int64) ([]*model.Video, error) {
	videos, err := db.GetVideosByIds(s.ctx, ids)
	if err != nil {
		return nil, err
	}
	byId := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		byId[v.VideoId] = v
	}
	ordered := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byId[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

func (s *VideoService) buildCards(videos []*model.Video) ([]*VideoCard, error) {
	seen := make(map[int64]struct{}, len(videos))
	ownerIds := make([]int64, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.UserId]; ok {
			continue
		}
		seen[v.UserId] = struct{}{}
		ownerIds = append(ownerIds, v.UserId)
	}
	owners, err := userdb.GetUsersByIds(s.ctx, ownerIds)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	byId := make(map[int64]*ChannelOwner, len(owners))
	for _, u := range owners {
		byId[u.UserId] = &ChannelOwner{
			UserId:      u.UserId,
			Username:    u.Username,
			ChannelName: u.ChannelName,
			AvatarUrl:   u.AvatarUrl,
			IsVerified:  u.IsVerified,
		}
	}
	cards := make([]*VideoCard, 0, len(videos))
	for _, v := range videos {
		cards = append(cards, &VideoCard{Video: v, Author: byId[v.UserId]})
	}
	return cards, nil
}
