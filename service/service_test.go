package service

import (
	"NoteShare/config"
	"NoteShare/dao"
	"NoteShare/dao/cache"
	"NoteShare/models"
	"NoteShare/pkg/testutil"
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*NoteEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev *NoteEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Event)
	}
	return out
}

type fixture struct {
	conf       *config.Config
	db         *gorm.DB
	mr         *miniredis.Miniredis
	users      *dao.Users
	noteDAO    *dao.NoteDAO
	storage    *LocalStorage
	publisher  *recordingPublisher
	facets     *cache.FacetStorage
	notes      *NoteService
	moderation *ModerationService
	auth       *AuthService
	sweep      *SweepService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := testutil.NewConfig(t)
	db := testutil.NewDB(t)
	rds, mr := testutil.NewRedis(t)

	storage, err := NewLocalStorage(conf.Storage.UploadDir)
	require.NoError(t, err)

	f := &fixture{
		conf:      conf,
		db:        db,
		mr:        mr,
		users:     dao.NewUsers(db),
		noteDAO:   dao.NewNoteDAO(db),
		storage:   storage,
		publisher: &recordingPublisher{},
	}
	facets := cache.NewFacetStorage(rds)
	f.facets = facets
	f.notes = &NoteService{
		Config:     conf,
		NoteDAO:    f.noteDAO,
		Storage:    storage,
		FacetCache: facets,
		Publisher:  f.publisher,
	}
	f.moderation = &ModerationService{
		NoteDAO:    f.noteDAO,
		Storage:    storage,
		FacetCache: facets,
		Publisher:  f.publisher,
	}
	f.auth = &AuthService{
		Config:    conf,
		UsersRepo: f.users,
		Sessions:  cache.NewSessionStorage(rds),
	}
	f.sweep = &SweepService{
		Config:  conf,
		NoteDAO: f.noteDAO,
		Storage: storage,
	}
	return f
}

func (f *fixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

type noteSeed struct {
	title, subject, course, semester, description string
	approved                                      bool
	at                                            time.Time
}

// seedNote 直接写入文件和记录，绕过上传校验
func (f *fixture) seedNote(t *testing.T, uploader *models.User, s noteSeed) *models.Note {
	t.Helper()
	ctx := context.Background()
	key := StorageKey("seed.pdf")
	_, err := f.storage.Save(ctx, key, bytes.NewReader([]byte("content of "+s.title)))
	require.NoError(t, err)

	if s.at.IsZero() {
		s.at = time.Now().UTC()
	}
	note := &models.Note{
		Title:       s.title,
		Subject:     s.subject,
		Course:      s.course,
		Semester:    s.semester,
		Description: s.description,
		Filename:    "seed.pdf",
		FilePath:    key,
		FileType:    "PDF",
		UploadDate:  s.at,
		UploaderID:  uploader.ID,
		IsApproved:  s.approved,
	}
	require.NoError(t, f.noteDAO.Create(ctx, note))
	return note
}

func (f *fixture) countNotes(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Note{}).Count(&n).Error)
	return n
}

func (f *fixture) uploadedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.conf.Storage.UploadDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// fileHeader 构造 multipart 文件头
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}
