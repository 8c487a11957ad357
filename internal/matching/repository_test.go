package matching

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetOpportunity(t *testing.T) {
	repo, mock := newMockRepo(t)

	attrs, _ := json.Marshal(OpportunityAttributes{RequiredSkills: []string{"welding"}})
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "creator_id", "title", "model_type", "relationship_type",
		"intent_type", "payment_mode", "status", "attributes",
		"matches_generated", "created_at", "updated_at",
	}).AddRow(int64(1), int64(9), "Pipeline repair", "1.1", "B2B",
		nil, nil, "active", attrs, 3, now, now)

	mock.ExpectQuery(`FROM opportunities`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	opp, err := repo.GetOpportunity(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "1.1", opp.ModelType)
	assert.Equal(t, RelationshipB2B, opp.RelationshipType)
	assert.Equal(t, []string{"welding"}, opp.Attributes.RequiredSkills)
	assert.Equal(t, 3, opp.MatchesGenerated)
	assert.Nil(t, opp.IntentType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOpportunityNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM opportunities`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOpportunity(context.Background(), 404)
	assert.ErrorIs(t, err, ErrOpportunityNotFound)
}

func TestGetCandidateNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM provider_profiles`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetCandidate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestGetApplicationStats(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"total", "completed"}).AddRow(4, 3)
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	stats, err := repo.GetApplicationStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Completed)
}

func TestCreateMatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	criteria, _ := json.Marshal(map[string]float64{ScoreSkillScope: 100})
	match := &Match{
		Reference:       "ref-1",
		ProjectID:       1,
		ProviderID:      2,
		OpportunityID:   1,
		ModelType:       "1.1",
		OpportunityType: OpportunityTypeCollaboration,
		Score:           95,
		Criteria:        criteria,
		Status:          MatchStatusPending,
	}

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO matches`).
		WithArgs("ref-1", int64(1), int64(2), int64(1), "1.1",
			OpportunityTypeCollaboration, 95, criteria, MatchStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), now))

	err := repo.CreateMatch(context.Background(), match)
	require.NoError(t, err)
	assert.Equal(t, int64(10), match.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasMatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasMatch(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIncrementMatchesGenerated(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE opportunities`).
		WithArgs(int64(1), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementMatchesGenerated(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkMatchNotified(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE matches`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkMatchNotified(context.Background(), 10)
	require.NoError(t, err)
}
