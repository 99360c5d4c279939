package dbhelper

import (
	"github.com/wishlistapp/apiv1/models"
	"github.com/wishlistapp/apiv1/utils"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrSessionNotIssued is returned once every admission attempt has been
// exhausted. Credential checks have already passed by then, so callers
// treat it as "signed in, but no session" rather than a fatal failure.
var ErrSessionNotIssued = errors.New("session could not be issued")

var errAdmissionConflict = errors.New("lost the session eviction race")
var errTokenCollision = errors.New("session token already exists")

// CreateSession admits a new session for the user, evicting the oldest
// one in place once AUTH_SESSIONS_LIMIT is reached. The read-then-write
// runs under a serializable transaction so two concurrent sign-ins can
// never both observe room and exceed the cap. Conflicts and token
// collisions retry with a fresh token, CREATE_SESSION_MAX_ATTEMPTS total.
func CreateSession(userId uint, keepSignedIn bool) (models.AuthSession, error) {
	var lastErr error
	for attempt := 0; attempt < utils.CREATE_SESSION_MAX_ATTEMPTS; attempt++ {
		now := utils.NowMillis()
		session := models.AuthSession{
			SessionID: utils.GenerateSessionToken(),
			UserID: userId,
			CreatedOnTimestamp: now,
			ExpiryTimestamp: now + int64(utils.SessionCookieSeconds(keepSignedIn))*1000,
		}
		err := trySessionAdmission(session)
		if err == nil {
			return session, nil
		}
		lastErr = err
		if !errors.Is(err, errAdmissionConflict) && !errors.Is(err, errTokenCollision) {
			return models.AuthSession{}, err
		}
	}
	return models.AuthSession{}, fmt.Errorf("%w: %v", ErrSessionNotIssued, lastErr)
}

// beginSerializable opens a transaction at the strongest isolation the
// store offers. sqlite is serializable by default and its driver rejects
// explicit levels, so only mysql gets one spelled out.
func beginSerializable() *gorm.DB {
	if DB.Dialector.Name() == "sqlite" {
		return DB.Begin()
	}
	return DB.Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
}

func trySessionAdmission(session models.AuthSession) error {
	tx := beginSerializable()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()
	var sessions []models.AuthSession
	result := tx.Raw(
		"SELECT * FROM auth_sessions WHERE user_id = ? ORDER BY created_on_timestamp ASC LIMIT ?",
		session.UserID,
		utils.AUTH_SESSIONS_LIMIT,
	).Scan(&sessions)
	if result.Error != nil {
		return classifyAdmissionError(result.Error)
	}
	if len(sessions) < utils.AUTH_SESSIONS_LIMIT {
		createResult := tx.Create(&session)
		if createResult.Error != nil {
			return classifyAdmissionError(createResult.Error)
		}
	} else {
		oldest := sessions[0]
		updateResult := tx.Exec(
			"UPDATE auth_sessions SET session_id = ?, created_on_timestamp = ?, expiry_timestamp = ? WHERE session_id = ?",
			session.SessionID,
			session.CreatedOnTimestamp,
			session.ExpiryTimestamp,
			oldest.SessionID,
		)
		if updateResult.Error != nil {
			return classifyAdmissionError(updateResult.Error)
		}
		if updateResult.RowsAffected == 0 {
			// another transaction already evicted or claimed that row
			return errAdmissionConflict
		}
	}
	commitResult := tx.Commit()
	if commitResult.Error != nil {
		// serializable conflicts can surface at commit time
		return fmt.Errorf("%w: %v", errAdmissionConflict, commitResult.Error)
	}
	return nil
}

// GetSession looks up a live session. Expired rows report not found.
func GetSession(sessionId string) (models.AuthSession, bool, error) {
	var session models.AuthSession
	result := DB.Raw("SELECT * FROM auth_sessions WHERE session_id = ?", sessionId).Scan(&session)
	if result.Error != nil {
		return session, false, result.Error
	}
	if result.RowsAffected == 0 || utils.NowMillis() >= session.ExpiryTimestamp {
		return session, false, nil
	}
	return session, true, nil
}

// DestroySession deletes a session by id. A missing row is not an error.
func DestroySession(sessionId string) error {
	result := DB.Exec("DELETE FROM auth_sessions WHERE session_id = ?", sessionId)
	return result.Error
}

// PurgeSessions deletes every session for the user, bounded by the cap so
// the delete can never scan past AUTH_SESSIONS_LIMIT rows.
func PurgeSessions(userId uint) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()
	var sessions []models.AuthSession
	result := tx.Raw(
		"SELECT * FROM auth_sessions WHERE user_id = ? LIMIT ?",
		userId,
		utils.AUTH_SESSIONS_LIMIT,
	).Scan(&sessions)
	if result.Error != nil {
		return result.Error
	}
	for _, session := range sessions {
		deleteResult := tx.Exec("DELETE FROM auth_sessions WHERE session_id = ?", session.SessionID)
		if deleteResult.Error != nil {
			return deleteResult.Error
		}
	}
	return tx.Commit().Error
}

// classifyAdmissionError maps store errors onto the retryable admission
// sentinels. InnoDB kills the deadlock victim of two serializable
// sign-ins at the statement (1213), or times out waiting on the lock
// (1205); both mean the other transaction won the race, not that
// admission failed for good.
func classifyAdmissionError(err error) error {
	if isDuplicateKeyError(err) {
		return errTokenCollision
	}
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %v", errAdmissionConflict, err)
	}
	return err
}

func isDuplicateKeyError(err error) bool {
	errString := fmt.Sprintf("%v", err)
	return strings.Contains(errString, utils.GORM_ERR_CODE_DUPLICATE_KEY) ||
		strings.Contains(errString, utils.SQLITE_ERR_DUPLICATE_KEY)
}

func isSerializationFailure(err error) bool {
	errString := fmt.Sprintf("%v", err)
	return strings.Contains(errString, utils.GORM_ERR_CODE_DEADLOCK) ||
		strings.Contains(errString, utils.GORM_ERR_CODE_LOCK_WAIT)
}
