package dao

import (
	"NoteShare/models"
	"NoteShare/pkg/utils"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNoteApproved 已审核通过的笔记不能再被驳回
var ErrNoteApproved = errors.New("note already approved")

// 允许做 distinct 的列
var facetColumns = map[string]struct{}{
	"subject":  {},
	"course":   {},
	"semester": {},
}

type NoteDAO struct {
	Repo[models.Note]
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{Repo: NewRepo[models.Note](db)}
}

// NoteQuery 列表查询条件，零值字段不参与过滤
type NoteQuery struct {
	Approved   *bool
	UploaderID uint64
	Subject    string
	Course     string
	Semester   string
	Search     string
	Limit      int
	Offset     int
}

// Create 创建笔记并回填上传者
func (d *NoteDAO) Create(ctx context.Context, note *models.Note) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		return tx.Preload("Uploader").First(note, note.ID).Error
	})
}

// FindByID 根据 ID 查询笔记
func (d *NoteDAO) FindByID(ctx context.Context, id uint64) (*models.Note, error) {
	var note models.Note
	err := d.Db.WithContext(ctx).Preload("Uploader").First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Page 分页查询，按上传时间倒序，同一时间按 ID 倒序
func (d *NoteDAO) Page(ctx context.Context, q NoteQuery) ([]*models.Note, int64, error) {
	var total int64
	err := d.Db.WithContext(ctx).
		Model(&models.Note{}).
		Scopes(q.filter).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	notes := make([]*models.Note, 0)
	if total == 0 || q.Offset < 0 || int64(q.Offset) >= total {
		return notes, total, nil
	}
	err = d.Db.WithContext(ctx).
		Scopes(q.filter).
		Preload("Uploader").
		Order("upload_date DESC").
		Order("id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&notes).Error
	return notes, total, err
}

func (q NoteQuery) filter(db *gorm.DB) *gorm.DB {
	like := "LIKE LOWER(?) ESCAPE '" + utils.LikeEscape + "'"
	if q.Approved != nil {
		db = db.Where("is_approved = ?", *q.Approved)
	}
	if q.UploaderID > 0 {
		db = db.Where("uploader_id = ?", q.UploaderID)
	}
	if q.Subject != "" {
		db = db.Where("LOWER(subject) "+like, utils.ContainsPattern(q.Subject))
	}
	if q.Course != "" {
		db = db.Where("LOWER(course) "+like, utils.ContainsPattern(q.Course))
	}
	if q.Semester != "" {
		db = db.Where("LOWER(semester) "+like, utils.ContainsPattern(q.Semester))
	}
	if q.Search != "" {
		pattern := utils.ContainsPattern(q.Search)
		db = db.Where("(LOWER(title) "+like+" OR LOWER(COALESCE(description, '')) "+like+")", pattern, pattern)
	}
	return db
}

// Approve 审核通过，重复审核直接成功
func (d *NoteDAO) Approve(ctx context.Context, id uint64) (*models.Note, error) {
	var note models.Note
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&note, id).Error; err != nil {
			return err
		}
		if !note.IsApproved {
			if err := tx.Model(&models.Note{}).
				Where("id = ?", id).
				Update("is_approved", true).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Uploader").First(&note, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// DeletePending 删除待审核笔记，返回被删除的记录
func (d *NoteDAO) DeletePending(ctx context.Context, id uint64) (*models.Note, error) {
	var note models.Note
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&note, id).Error; err != nil {
			return err
		}
		if note.IsApproved {
			return ErrNoteApproved
		}
		res := tx.Where("id = ? AND is_approved = ?", id, false).Delete(&models.Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 并发审核通过
			return ErrNoteApproved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// IncrDownloadCount 下载数原子 +1，只对已审核笔记生效
func (d *NoteDAO) IncrDownloadCount(ctx context.Context, id uint64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Note{}).
			Where("id = ? AND is_approved = ?", id, true).
			UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DistinctApproved 已审核笔记某一列的去重值
func (d *NoteDAO) DistinctApproved(ctx context.Context, column string) ([]string, error) {
	if _, ok := facetColumns[column]; !ok {
		return nil, fmt.Errorf("dao.NoteDAO.DistinctApproved: unsupported column %q", column)
	}
	values := make([]string, 0)
	err := d.Db.WithContext(ctx).
		Model(&models.Note{}).
		Where("is_approved = ?", true).
		Distinct(column).
		Pluck(column, &values).Error
	return values, err
}

// ReferencedPaths 返回 paths 中仍被笔记引用的存储路径
func (d *NoteDAO) ReferencedPaths(ctx context.Context, paths []string) (map[string]struct{}, error) {
	found := make(map[string]struct{}, len(paths))
	if len(paths) == 0 {
		return found, nil
	}
	var rows []string
	err := d.Db.WithContext(ctx).
		Model(&models.Note{}).
		Where("file_path IN ?", paths).
		Pluck("file_path", &rows).Error
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		found[p] = struct{}{}
	}
	return found, nil
}
