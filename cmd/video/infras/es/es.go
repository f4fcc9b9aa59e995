package es

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/config"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/pagination"
)

var client *elastic.Client

const mapping = `{
  "mappings": {
    "properties": {
      "video_id":    {"type": "long"},
      "user_id":     {"type": "long"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "tags":        {"type": "text"},
      "category":    {"type": "keyword"},
      "visibility":  {"type": "keyword"},
      "is_blocked":  {"type": "boolean"},
      "visit_count": {"type": "long"},
      "created_at":  {"type": "keyword"}
    }
  }
}`

// Init connects to elasticsearch and creates the video index if missing.
// Search falls back to the database when the client is unavailable, so a
// failed Init is reported but not fatal.
func Init(ctx context.Context) error {
	c, err := elastic.NewClient(
		elastic.SetURL(config.ConfigInfo.Elasticsearch.Addr),
		elastic.SetSniff(false),
	)
	if err != nil {
		return errors.Wrap(err, "elasticsearch connect failed")
	}
	exists, err := c.IndexExists(constants.VideoIndexName).Do(ctx)
	if err != nil {
		return errors.Wrap(err, "index check failed")
	}
	if !exists {
		if _, err := c.CreateIndex(constants.VideoIndexName).BodyString(mapping).Do(ctx); err != nil {
			return errors.Wrap(err, "index create failed")
		}
	}
	client = c
	return nil
}

// Available reports whether the search backend is usable.
func Available() bool {
	return client != nil
}

type videoDoc struct {
	VideoId     int64  `json:"video_id"`
	UserId      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Category    string `json:"category"`
	Visibility  string `json:"visibility"`
	IsBlocked   bool   `json:"is_blocked"`
	VisitCount  int64  `json:"visit_count"`
	CreatedAt   string `json:"created_at"`
}

func docFromVideo(v *model.Video) videoDoc {
	return videoDoc{
		VideoId:     v.VideoId,
		UserId:      v.UserId,
		Title:       v.Title,
		Description: v.Description,
		Tags:        v.Tags,
		Category:    v.Category,
		Visibility:  v.Visibility,
		IsBlocked:   v.IsBlocked,
		VisitCount:  v.VisitCount,
		CreatedAt:   v.CreatedAt,
	}
}

// IndexVideo upserts a video document. Indexing errors are logged rather
// than propagated; the database stays the source of truth.
func IndexVideo(ctx context.Context, v *model.Video) {
	if client == nil {
		return
	}
	_, err := client.Index().
		Index(constants.VideoIndexName).
		Id(fmt.Sprint(v.VideoId)).
		BodyJson(docFromVideo(v)).
		Do(ctx)
	if err != nil {
		logrus.Errorf("es: index video %d: %v", v.VideoId, err)
	}
}

func DeleteVideoDoc(ctx context.Context, videoId int64) {
	if client == nil {
		return
	}
	_, err := client.Delete().
		Index(constants.VideoIndexName).
		Id(fmt.Sprint(videoId)).
		Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		logrus.Errorf("es: delete video %d: %v", videoId, err)
	}
}

// Search runs a relevance query over title, description and tags,
// restricted to public unblocked videos. Results come back as ids in rank
// order; callers hydrate them from the database.
func Search(ctx context.Context, keyword, category string, p pagination.Params) ([]int64, int64, error) {
	query := elastic.NewBoolQuery().
		Filter(
			elastic.NewTermQuery("visibility", constants.VisibilityPublic),
			elastic.NewTermQuery("is_blocked", false),
		)
	if keyword != "" {
		query = query.Must(elastic.NewMultiMatchQuery(keyword, "title^3", "tags^2", "description"))
	}
	if category != "" && category != "all" {
		query = query.Filter(elastic.NewTermQuery("category", category))
	}

	result, err := client.Search().
		Index(constants.VideoIndexName).
		Query(query).
		Sort("_score", false).
		SortBy(elastic.NewFieldSort("visit_count").Desc()).
		From(int(p.Offset())).
		Size(int(p.Limit)).
		Do(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "es search failed")
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var doc videoDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		ids = append(ids, doc.VideoId)
	}
	return ids, result.TotalHits(), nil
}
