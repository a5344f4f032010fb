package service

import (
	"NoteShare/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_Approve(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin")
	u := f.createUser(t, "judy")
	note := f.seedNote(t, u, noteSeed{title: "pending", subject: "s", course: "c", semester: "x"})
	ctx := context.Background()

	_, err := f.moderation.Approve(ctx, admin.ID, 31337)
	require.ErrorIs(t, err, ErrNoteNotFound)

	item, err := f.moderation.Approve(ctx, admin.ID, note.ID)
	require.NoError(t, err)
	assert.True(t, item.IsApproved)
	assert.Equal(t, "judy", item.UploaderName)

	// 重复审核
	item, err = f.moderation.Approve(ctx, admin.ID, note.ID)
	require.NoError(t, err)
	assert.True(t, item.IsApproved)

	resp, err := f.notes.List(ctx, &types.ListNotesReq{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, []string{EventNoteApproved, EventNoteApproved}, f.publisher.names())
}

func TestModerationService_Reject(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin")
	u := f.createUser(t, "ken")
	pending := f.seedNote(t, u, noteSeed{title: "pending", subject: "s", course: "c", semester: "x"})
	approved := f.seedNote(t, u, noteSeed{title: "approved", subject: "s", course: "c", semester: "x", approved: true})
	ctx := context.Background()
	require.Len(t, f.uploadedFiles(t), 2)

	require.ErrorIs(t, f.moderation.Reject(ctx, admin.ID, 31337), ErrNoteNotFound)

	require.ErrorIs(t, f.moderation.Reject(ctx, admin.ID, approved.ID), ErrNoteAlreadyApproved)
	_, err := f.noteDAO.FindByID(ctx, approved.ID)
	require.NoError(t, err)
	assert.Len(t, f.uploadedFiles(t), 2)

	require.NoError(t, f.moderation.Reject(ctx, admin.ID, pending.ID))
	_, err = f.notes.Download(ctx, pending.ID)
	require.ErrorIs(t, err, ErrNoteNotFound)
	assert.Equal(t, []string{approved.FilePath}, f.uploadedFiles(t))
	assert.Equal(t, []string{EventNoteRejected}, f.publisher.names())

	require.ErrorIs(t, f.moderation.Reject(ctx, admin.ID, pending.ID), ErrNoteNotFound)
}

func TestModerationService_RejectMissingFile(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, "leo")
	note := f.seedNote(t, u, noteSeed{title: "pending", subject: "s", course: "c", semester: "x"})
	ctx := context.Background()
	require.NoError(t, f.storage.Delete(ctx, note.FilePath))

	require.NoError(t, f.moderation.Reject(ctx, u.ID, note.ID))
	assert.Zero(t, f.countNotes(t))
}
