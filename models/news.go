package models

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"time"

	"synapshare/helpers"

	"github.com/go-redis/redis/v8"
)

// the provider allows only a small request contingent, so responses are
// cached for a few minutes - news do not change that fast anyway
const newsCacheKey = "news_technology"
const newsCacheTTL = 10 * time.Minute

// NewsModel proxies the external headline provider so the API key
// never reaches a client
type NewsModel struct {
	CacheClient *redis.Client
}

// GetNews returns the current technology headlines as delivered by the
// provider (pass-through, no re-mapping of the articles)
func (m NewsModel) GetNews() (json.RawMessage, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	// serve from the cache if possible
	cached, err := m.CacheClient.Get(ctx, newsCacheKey).Result()
	if err == nil {
		return json.RawMessage(cached), nil
	}
	if err != redis.Nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	articles, err := fetchHeadlines(ctx)
	if err != nil {
		return nil, err
	}

	// a failing cache write is not worth an error to the client
	_ = m.CacheClient.Set(ctx, newsCacheKey, string(articles), newsCacheTTL).Err()

	return articles, nil
}

// fetchHeadlines calls the provider and extracts the article list
func fetchHeadlines(ctx context.Context) (json.RawMessage, error) {

	params := url.Values{}
	params.Set("category", "technology")
	params.Set("apiKey", os.Getenv("NEWS_API_KEY"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://newsapi.org/v2/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, helpers.WrapError(ErrNewsUnavailable, helpers.FuncName())
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	data := struct {
		Articles json.RawMessage `json:"articles"`
	}{}

	err = json.Unmarshal(body, &data)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return data.Articles, nil
}
