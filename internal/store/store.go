// Package store persists schedules, match history, and scores to MongoDB.
// The engine only sees the schedule.Store interface; everything here is a
// collaborator behind it.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Wawaguigui/MatchPlanner/internal/schedule"
)

// Store wraps the MongoDB client and the collections the planner writes to.
type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Schedules *mongo.Collection
		Matches   *mongo.Collection
	}
}

// Ensure Store implements the engine's persistence interface.
var _ schedule.Store = (*Store)(nil)

// ScheduleDoc is the persisted form of one tournament's generated schedule.
type ScheduleDoc struct {
	TournamentID string          `bson:"tournament_id"`
	Tours        []schedule.Tour `bson:"tours"`
	UpdatedAt    time.Time       `bson:"updated_at"`
}

// NewStore connects to MongoDB and binds the planner's collections.
func NewStore(dbName, mongoURI string) (*Store, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Schedules = db.Collection("generated_schedules")
	s.Collections.Matches = db.Collection("matches")
	return s, nil
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// SaveSchedule upserts the full tour list for a tournament.
func (s *Store) SaveSchedule(tournamentID string, tours []schedule.Tour) error {
	doc := ScheduleDoc{
		TournamentID: tournamentID,
		Tours:        tours,
		UpdatedAt:    time.Now(),
	}
	_, err := s.Collections.Schedules.ReplaceOne(
		context.TODO(),
		bson.M{"tournament_id": tournamentID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("saving schedule for %s: %w", tournamentID, err)
	}
	return nil
}

// ReadSchedule returns the persisted tour list for a tournament, or nil when
// none was saved yet.
func (s *Store) ReadSchedule(tournamentID string) ([]schedule.Tour, error) {
	var doc ScheduleDoc
	err := s.Collections.Schedules.FindOne(
		context.TODO(),
		bson.M{"tournament_id": tournamentID},
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading schedule for %s: %w", tournamentID, err)
	}
	return doc.Tours, nil
}

// SaveMatches upserts flattened per-match history rows, keyed by match id.
func (s *Store) SaveMatches(tournamentID string, records []schedule.MatchRecord) error {
	for _, r := range records {
		_, err := s.Collections.Matches.ReplaceOne(
			context.TODO(),
			bson.M{"tournament_id": tournamentID, "id": r.ID},
			r,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("saving match %s: %w", r.ID, err)
		}
	}
	return nil
}

// SaveMatchScore updates one team's score on a persisted match. A nil score
// clears the stored value.
func (s *Store) SaveMatchScore(tournamentID, matchID string, team schedule.Team, score *int) error {
	field := "score_team1"
	if team == schedule.Team2 {
		field = "score_team2"
	}

	res, err := s.Collections.Matches.UpdateOne(
		context.TODO(),
		bson.M{"tournament_id": tournamentID, "id": matchID},
		bson.M{"$set": bson.M{field: score, "timestamp": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("saving score for match %s: %w", matchID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("match %s not found for tournament %s", matchID, tournamentID)
	}
	return nil
}
