package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/festival-jury/pkg/core/ranking"
	"github.com/jakechorley/festival-jury/pkg/db"
)

// RankingStore defines the database operations needed for ranking films
type RankingStore interface {
	GetRatingAggregates(ctx context.Context, statuses []string) ([]db.RatingAggregate, error)
}

// RankingRecorder receives the size of each ranking run
type RankingRecorder interface {
	ObserveRanking(films int)
}

// RankFilms produces the ranked list of eligible films from their aggregated ratings
func RankFilms(ctx context.Context, store RankingStore, statuses []string, logger *zap.Logger, recorder RankingRecorder) ([]ranking.RankedRow, error) {
	aggregates, err := store.GetRatingAggregates(ctx, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rating aggregates: %w", err)
	}

	ranked := ranking.Rank(toRankingRows(aggregates))

	unrated := 0
	for _, row := range ranked {
		if !row.HasAverage() {
			unrated++
		}
	}

	logger.Debug("Films ranked", zap.Int("films", len(ranked)), zap.Int("unrated", unrated))
	recorder.ObserveRanking(len(ranked))

	return ranked, nil
}
