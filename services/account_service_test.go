package services

import (
	"testing"
	"time"

	"finster-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func expectUserLookup(mock sqlmock.Sqlmock, userID string) {
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "hashed_google_id", "avatar_url", "created_at"}).
			AddRow(userID, "FishermanFred", "hash1", "", time.Now()))
}

// Suppression d'un compte avec 3 posts et 2 likes donnés: tout part dans la
// même transaction
func TestDeleteAccount_Cascade(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	expectUserLookup(mock, testUserID)
	mock.ExpectExec(`UPDATE posts SET like_count = like_count - 1 WHERE id IN \(SELECT post_id FROM likes WHERE user_id = \$1\)`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id = \$1`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM likes WHERE post_id IN \(SELECT id FROM posts WHERE user_id = \$1\)`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "posts" WHERE user_id = \$1`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewAccountService(gormDB).DeleteAccount(testUserID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Une étape qui échoue annule tout: aucune mutation partielle observable
func TestDeleteAccount_RollsBackOnFailure(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	expectUserLookup(mock, testUserID)
	mock.ExpectExec(`UPDATE posts SET like_count = like_count - 1 WHERE id IN \(SELECT post_id FROM likes WHERE user_id = \$1\)`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id = \$1`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM likes WHERE post_id IN \(SELECT id FROM posts WHERE user_id = \$1\)`).
		WithArgs(testUserID).
		WillReturnError(gorm.ErrInvalidDB)
	mock.ExpectRollback()

	err := NewAccountService(gormDB).DeleteAccount(testUserID)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_UserNotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(testUserID, 1).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	err := NewAccountService(gormDB).DeleteAccount(testUserID)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_MissingUser(t *testing.T) {
	gormDB, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	err := NewAccountService(gormDB).DeleteAccount("")

	assert.ErrorIs(t, err, ErrUserRequired)
}
