package services

import (
	"io"
	"log"
	"os"
	"testing"

	"finster-backend/repositories"
	"finster-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

const (
	testPostID = "123e4567-e89b-12d3-a456-426614174000"
	testUserID = "abc12345-e89b-12d3-a456-426614174000"
)

// expectToggleOn scripte la transaction complète d'un passage à "liké",
// avec likeCount comme valeur du compteur après la bascule
func expectToggleOn(mock sqlmock.Sqlmock, userID, postID string, likeCount int) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(userID, postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "like_count"=like_count \+ \$1 WHERE id = \$2`).
		WithArgs(1, postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT like_count FROM posts WHERE id = \$1`).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(likeCount))
	mock.ExpectCommit()
}

// expectToggleOff scripte la transaction complète d'un retour à "non liké"
func expectToggleOff(mock sqlmock.Sqlmock, userID, postID string, likeCount int) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(userID, postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(userID, postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "like_count"=like_count \+ \$1 WHERE id = \$2`).
		WithArgs(-1, postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT like_count FROM posts WHERE id = \$1`).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(likeCount))
	mock.ExpectCommit()
}

func TestToggle_AddsLike(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectToggleOn(mock, testUserID, testPostID, 1)

	result, err := NewLikeToggleService(gormDB).Toggle(testUserID, testPostID)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Likes)
	assert.True(t, result.IsLikedByUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_RemovesLike(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectToggleOff(mock, testUserID, testPostID, 0)

	result, err := NewLikeToggleService(gormDB).Toggle(testUserID, testPostID)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Likes)
	assert.False(t, result.IsLikedByUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deux bascules consécutives ramènent le post à son état de départ
func TestToggle_Involution(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectToggleOn(mock, testUserID, testPostID, 6)
	expectToggleOff(mock, testUserID, testPostID, 5)

	service := NewLikeToggleService(gormDB)

	first, err := service.Toggle(testUserID, testPostID)
	assert.NoError(t, err)
	assert.Equal(t, 6, first.Likes)
	assert.True(t, first.IsLikedByUser)

	second, err := service.Toggle(testUserID, testPostID)
	assert.NoError(t, err)
	assert.Equal(t, 5, second.Likes)
	assert.False(t, second.IsLikedByUser)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Scénario: A like (0→1), B like (1→2), A re-bascule (2→1)
func TestToggle_TwoUsersScenario(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userA := testUserID
	userB := "def67890-e89b-12d3-a456-426614174000"

	expectToggleOn(mock, userA, testPostID, 1)
	expectToggleOn(mock, userB, testPostID, 2)
	expectToggleOff(mock, userA, testPostID, 1)

	service := NewLikeToggleService(gormDB)

	result, err := service.Toggle(userA, testPostID)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Likes)
	assert.True(t, result.IsLikedByUser)

	result, err = service.Toggle(userB, testPostID)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Likes)
	assert.True(t, result.IsLikedByUser)

	result, err = service.Toggle(userA, testPostID)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Likes)
	assert.False(t, result.IsLikedByUser)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_PostNotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WithArgs(testPostID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	result, err := NewLikeToggleService(gormDB).Toggle(testUserID, testPostID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_MissingUser(t *testing.T) {
	gormDB, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	result, err := NewLikeToggleService(gormDB).Toggle("", testPostID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUserRequired)
}

// Double soumission: la première transaction perd la course sur la clé
// composite, la bascule est rejouée une fois et aboutit sur l'état inverse
func TestToggle_RetryAfterDuplicate(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WithArgs(testPostID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(testUserID, testPostID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "likes"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	// Le rejeu observe la ligne posée par la requête concurrente
	expectToggleOff(mock, testUserID, testPostID, 1)

	result, err := NewLikeToggleService(gormDB).Toggle(testUserID, testPostID)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Likes)
	assert.False(t, result.IsLikedByUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_SecondConflictSurfaces(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
			WithArgs(testPostID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
			WithArgs(testUserID, testPostID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO "likes"`).
			WillReturnError(gorm.ErrDuplicatedKey)
		mock.ExpectRollback()
	}

	result, err := NewLikeToggleService(gormDB).Toggle(testUserID, testPostID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, repositories.ErrLikeExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
