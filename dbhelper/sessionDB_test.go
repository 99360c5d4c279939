package dbhelper

import (
	"github.com/wishlistapp/apiv1/models"
	"github.com/wishlistapp/apiv1/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"errors"
	"sync"
	"testing"
)

func TestCreateSessionUnderCap(t *testing.T) {
	openTestDB(t)
	first, err := CreateSession(1, false)
	require.NoError(t, err)
	second, err := CreateSession(1, false)
	require.NoError(t, err)
	assert.Len(t, first.SessionID, utils.SESSION_TOKEN_LENGTH)
	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.EqualValues(t, 2, countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE user_id = ?", 1))
}

func TestCreateSessionExpiry(t *testing.T) {
	openTestDB(t)
	short, err := CreateSession(1, false)
	require.NoError(t, err)
	long, err := CreateSession(1, true)
	require.NoError(t, err)
	assert.EqualValues(t, 6*60*60*1000, short.ExpiryTimestamp-short.CreatedOnTimestamp)
	assert.EqualValues(t, 7*24*60*60*1000, long.ExpiryTimestamp-long.CreatedOnTimestamp)
}

func TestCreateSessionRotatesOldest(t *testing.T) {
	openTestDB(t)
	seedSession(t, "oldest", 1, 1000)
	seedSession(t, "middle", 1, 2000)
	seedSession(t, "newest", 1, 3000)

	session, err := CreateSession(1, false)
	require.NoError(t, err)

	assert.EqualValues(t, 3, countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE user_id = ?", 1))
	assert.EqualValues(t, 0, countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE session_id = ?", "oldest"))
	assert.EqualValues(t, 1, countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE session_id = ?", "middle"))
	assert.EqualValues(t, 1, countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE session_id = ?", "newest"))
	assert.EqualValues(t, 1, countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE session_id = ?", session.SessionID))

	// the evicted slot's token no longer admits anyone
	_, found, err := GetSession("oldest")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConcurrentCreateSessionNeverExceedsCap(t *testing.T) {
	openTestDB(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := CreateSession(7, false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, utils.AUTH_SESSIONS_LIMIT,
		countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE user_id = ?", 7))
}

func TestAdmissionErrorClassification(t *testing.T) {
	// mysql reports a serializable deadlock victim at the statement, not
	// at commit; both lock errors must feed the bounded retry
	deadlock := errors.New("Error 1213: Deadlock found when trying to get lock; try restarting transaction")
	assert.True(t, errors.Is(classifyAdmissionError(deadlock), errAdmissionConflict))

	lockWait := errors.New("Error 1205: Lock wait timeout exceeded; try restarting transaction")
	assert.True(t, errors.Is(classifyAdmissionError(lockWait), errAdmissionConflict))

	mysqlDuplicate := errors.New("Error 1062: Duplicate entry 'x' for key 'auth_sessions.PRIMARY'")
	assert.True(t, errors.Is(classifyAdmissionError(mysqlDuplicate), errTokenCollision))

	sqliteDuplicate := errors.New("UNIQUE constraint failed: auth_sessions.session_id")
	assert.True(t, errors.Is(classifyAdmissionError(sqliteDuplicate), errTokenCollision))

	// anything else stays fatal and is surfaced unchanged
	driverDown := errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")
	classified := classifyAdmissionError(driverDown)
	assert.False(t, errors.Is(classified, errAdmissionConflict))
	assert.False(t, errors.Is(classified, errTokenCollision))
	assert.Equal(t, driverDown, classified)
}

func TestGetSessionExpired(t *testing.T) {
	openTestDB(t)
	require.NoError(t, DB.Create(&models.AuthSession{
		SessionID: "expired-session-token",
		UserID: 1,
		CreatedOnTimestamp: utils.NowMillis() - 2000,
		ExpiryTimestamp: utils.NowMillis() - 1000,
	}).Error)
	_, found, err := GetSession("expired-session-token")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDestroySession(t *testing.T) {
	openTestDB(t)
	session, err := CreateSession(1, false)
	require.NoError(t, err)
	require.NoError(t, DestroySession(session.SessionID))
	_, found, err := GetSession(session.SessionID)
	require.NoError(t, err)
	assert.False(t, found)
	// deleting a session that is already gone is not an error
	assert.NoError(t, DestroySession(session.SessionID))
}

func TestPurgeSessions(t *testing.T) {
	openTestDB(t)
	for i := 0; i < utils.AUTH_SESSIONS_LIMIT; i++ {
		_, err := CreateSession(1, false)
		require.NoError(t, err)
	}
	other, err := CreateSession(2, false)
	require.NoError(t, err)

	require.NoError(t, PurgeSessions(1))
	assert.EqualValues(t, 0, countRows(t, "SELECT COUNT(*) FROM auth_sessions WHERE user_id = ?", 1))
	_, found, err := GetSession(other.SessionID)
	require.NoError(t, err)
	assert.True(t, found)
}

func seedSession(t *testing.T, sessionId string, userId uint, createdOn int64) {
	t.Helper()
	require.NoError(t, DB.Create(&models.AuthSession{
		SessionID: sessionId,
		UserID: userId,
		CreatedOnTimestamp: createdOn,
		ExpiryTimestamp: createdOn + 1000*60*60,
	}).Error)
}
