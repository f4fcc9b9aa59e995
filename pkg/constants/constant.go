package constants

const (
	// TimeFormat is the layout used for every timestamp column.
	TimeFormat = "2006-01-02 15:04:05"

	// Pagination defaults. Video listings page by DefaultVideoLimit,
	// comment and subscriber listings by DefaultListLimit.
	DefaultVideoLimit = 20
	DefaultListLimit  = 50
	MaxPageLimit      = 100

	// TrendingLimit is the fixed size of the trending feed, unpaginated.
	TrendingLimit = 20

	MaxTitleLength       = 100
	MaxDescriptionLength = 5000
	MaxCommentLength     = 1000
	MaxChannelDescLength = 500
	MinUsernameLength    = 3
	MaxUsernameLength    = 30
	MinPasswordLength    = 6

	ReactionLike    = "like"
	ReactionDislike = "dislike"

	// RootCommentParentID marks a top-level comment.
	RootCommentParentID = 0

	VideoIndexName = "videos"
)

// VideoCategories mirrors the category enum accepted at upload time.
var VideoCategories = []string{
	"music", "gaming", "education", "entertainment",
	"comedy", "technology", "sports", "news", "other",
}

// Visibility values.
const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityUnlisted = "unlisted"
)

func IsValidCategory(category string) bool {
	for _, c := range VideoCategories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidVisibility(visibility string) bool {
	switch visibility {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return true
	}
	return false
}
