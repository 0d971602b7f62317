package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hbs/src/config"
	"hbs/src/lib"
	"hbs/src/types"
	"log"
	"os"
	"os/exec"
	"path"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var ErrRecommenderTimeout = errors.New("recommender process timed out")

// GetRecommendations proxies to the external Python recommender. Preferences
// go through a temp file the script expects, the process runs under a hard
// timeout and is killed on expiry, and the last JSON line of stdout is the
// result. Results are cached in Redis per user and preference set.
func GetRecommendations(ctx context.Context, userID uint, body *types.RecommendationRequestBody) (json.RawMessage, error) {
	prefs := withRecommendationDefaults(body)
	cacheKey := fmt.Sprintf("recommendations:%d:%d:%d:%d:%s:%d:%d:%d",
		userID, prefs.Budget, prefs.Adults, prefs.Children, prefs.TripType,
		prefs.WeekendNights, prefs.WeekNights, prefs.ArrivalMonth)

	rd := lib.GetRedisClient()
	if rd != nil {
		if cached, err := rd.Get(ctx, cacheKey).Result(); err == nil {
			return json.RawMessage(cached), nil
		}
	}

	payload, err := json.Marshal(map[string]any{
		"preferences": prefs,
		"user_id":     fmt.Sprint(userID),
	})
	if err != nil {
		return nil, err
	}
	dir := config.RecommenderDir()
	tempFile := path.Join(dir, "temp_preferences.json")
	if err := os.WriteFile(tempFile, payload, 0o644); err != nil {
		return nil, err
	}
	defer os.Remove(tempFile)

	runCtx, cancel := context.WithTimeout(ctx, config.RecommenderTimeout())
	defer cancel()

	python := os.Getenv("PYTHON_BIN")
	if python == "" {
		python = "python3"
	}
	cmd := exec.CommandContext(runCtx, python, "-u", config.RecommenderScript())
	cmd.Dir = dir
	out, err := cmd.Output()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, ErrRecommenderTimeout
	}
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("recommender failed: %w", err)
	}

	result, err := lastJSONLine(string(out))
	if err != nil {
		return nil, err
	}
	if rd != nil {
		if err := rd.Set(ctx, cacheKey, string(result), 15*time.Minute).Err(); err != nil {
			log.Printf("[redis] Error caching recommendations: %s\n", err.Error())
		}
	}
	return result, nil
}

// lastJSONLine picks the result object out of the script's chatty stdout.
func lastJSONLine(out string) (json.RawMessage, error) {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || !gjson.Valid(line) {
			continue
		}
		if gjson.Get(line, "success").Exists() {
			return json.RawMessage(line), nil
		}
	}
	return nil, errors.New("no result in recommender output")
}

func withRecommendationDefaults(body *types.RecommendationRequestBody) *types.RecommendationRequestBody {
	prefs := *body
	if prefs.Budget <= 0 {
		prefs.Budget = 100
	}
	if prefs.Adults <= 0 {
		prefs.Adults = 2
	}
	if prefs.TripType == "" {
		prefs.TripType = "leisure"
	}
	if prefs.WeekendNights <= 0 {
		prefs.WeekendNights = 2
	}
	if prefs.WeekNights <= 0 {
		prefs.WeekNights = 3
	}
	if prefs.ArrivalMonth < 1 || prefs.ArrivalMonth > 12 {
		prefs.ArrivalMonth = int(time.Now().Month())
	}
	return &prefs
}
