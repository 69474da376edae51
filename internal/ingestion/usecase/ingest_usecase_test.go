package usecase

import (
	"os"
	"path/filepath"
	"testing"

	ingestiondomain "email-audit-backend/internal/ingestion/domain"
	"email-audit-backend/internal/ingestion/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingQueuer struct {
	queued []string
}

func (q *recordingQueuer) QueueAudit(threadID string) bool {
	q.queued = append(q.queued, threadID)
	return true
}

func newIngestFixture(t *testing.T) (IngestUsecase, *recordingQueuer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ingestiondomain.EmailThread{}, &ingestiondomain.EmailMessage{}))

	queuer := &recordingQueuer{}
	uc := NewIngestUsecase(repository.NewThreadRepository(db), repository.NewMessageRepository(db), queuer)
	return uc, queuer, db
}

func writeEML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.eml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessEMLFileCreatesThreadAndQueuesAudit(t *testing.T) {
	uc, queuer, db := newIngestFixture(t)

	path := writeEML(t, "From: alice@example.com\r\n"+
		"To: bob@example.com\r\n"+
		"Subject: Invoice question\r\n"+
		"Message-ID: <inv-1@example.com>\r\n"+
		"\r\n"+
		"Where is invoice 42?\r\n")

	result, err := uc.ProcessEMLFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, result.ThreadID)
	assert.Equal(t, 1, result.MessagesProcessed)
	assert.EqualValues(t, 1, result.TotalMessagesInThread)

	var thread ingestiondomain.EmailThread
	require.NoError(t, db.First(&thread, "id = ?", result.ThreadID).Error)
	assert.Equal(t, "Invoice question", thread.Subject)

	// First message of a thread triggers an audit run
	assert.Equal(t, []string{result.ThreadID}, queuer.queued)
}

func TestProcessEMLFileDeduplicatesByMessageID(t *testing.T) {
	uc, queuer, db := newIngestFixture(t)

	eml := "From: alice@example.com\r\n" +
		"Subject: Invoice question\r\n" +
		"Message-ID: <inv-1@example.com>\r\n" +
		"\r\n" +
		"Where is invoice 42?\r\n"

	first, err := uc.ProcessEMLFile(writeEML(t, eml))
	require.NoError(t, err)
	second, err := uc.ProcessEMLFile(writeEML(t, eml))
	require.NoError(t, err)

	assert.Equal(t, first.ThreadID, second.ThreadID)
	assert.EqualValues(t, 1, second.TotalMessagesInThread)

	var count int64
	require.NoError(t, db.Model(&ingestiondomain.EmailMessage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Both uploads land on a single-message thread, so both queue a run
	assert.Len(t, queuer.queued, 2)
}

func TestProcessEMLFileMissingFile(t *testing.T) {
	uc, queuer, _ := newIngestFixture(t)

	result, err := uc.ProcessEMLFile(filepath.Join(t.TempDir(), "nope.eml"))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, queuer.queued)
}

func TestProcessEMLFileDigestQueuesOneAudit(t *testing.T) {
	uc, queuer, db := newIngestFixture(t)

	eml := "From: archive@example.com\r\n" +
		"Subject: Thread export\r\n" +
		"Content-Type: multipart/digest; boundary=thread\r\n" +
		"\r\n" +
		"--thread\r\n" +
		"Content-Type: message/rfc822\r\n" +
		"\r\n" +
		"From: alice@example.com\r\n" +
		"Subject: Kickoff\r\n" +
		"Message-ID: <k-1@example.com>\r\n" +
		"\r\n" +
		"Starting the project.\r\n" +
		"--thread\r\n" +
		"Content-Type: message/rfc822\r\n" +
		"\r\n" +
		"From: bob@example.com\r\n" +
		"Subject: Re: Kickoff\r\n" +
		"Message-ID: <k-2@example.com>\r\n" +
		"\r\n" +
		"Sounds good.\r\n" +
		"--thread--\r\n"

	result, err := uc.ProcessEMLFile(writeEML(t, eml))
	require.NoError(t, err)
	assert.Equal(t, 2, result.MessagesProcessed)
	assert.EqualValues(t, 2, result.TotalMessagesInThread)

	// Both embedded messages share the thread keyed by the first subject
	var msgs []ingestiondomain.EmailMessage
	require.NoError(t, db.Find(&msgs).Error)
	require.Len(t, msgs, 2)
	assert.Equal(t, msgs[0].ThreadID, msgs[1].ThreadID)

	assert.Equal(t, []string{result.ThreadID}, queuer.queued)
}
