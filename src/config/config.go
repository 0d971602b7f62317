package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// DATE_PARSE_FORMAT is the wire format for check-in/check-out dates.
const DATE_PARSE_FORMAT = "2006-01-02"

const TOKEN_TTL = 7 * 24 * time.Hour

// FaceMatchThreshold returns the maximum Euclidean distance between a stored
// face descriptor and a probe descriptor that still counts as a match.
func FaceMatchThreshold() float64 {
	raw := os.Getenv("FACE_MATCH_THRESHOLD")
	if raw == "" {
		return 0.6
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.6
	}
	return threshold
}

// RecommenderTimeout bounds how long the external recommender process may run
// before it is killed.
func RecommenderTimeout() time.Duration {
	raw := os.Getenv("RECOMMENDER_TIMEOUT_SECONDS")
	if raw == "" {
		return 30 * time.Second
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(secs) * time.Second
}

func RecommenderDir() string {
	if dir := os.Getenv("ML_BACKEND_DIR"); dir != "" {
		return dir
	}
	return "ml-backend"
}

func RecommenderScript() string {
	if script := os.Getenv("ML_RECOMMENDER_SCRIPT"); script != "" {
		return script
	}
	return "hotel_recommender_file_based.py"
}
