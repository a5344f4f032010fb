package service

import (
	"NoteShare/config"
	"NoteShare/dao"
	"NoteShare/dao/cache"
	"NoteShare/models"
	"NoteShare/pkg/log"
	"NoteShare/pkg/response"
	"NoteShare/pkg/utils"
	"NoteShare/types"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	FacetSubject  = "subject"
	FacetCourse   = "course"
	FacetSemester = "semester"
)

var now = func() time.Time { return time.Now().UTC() }

var _ INoteService = (*NoteService)(nil)

type INoteService interface {
	// Upload 校验并保存上传的笔记，新笔记处于待审核状态
	Upload(ctx context.Context, uploaderID uint64, req *types.UploadNoteRequest, file *multipart.FileHeader) (*types.NoteItem, error)
	// List 已审核笔记，支持筛选和搜索
	List(ctx context.Context, req *types.ListNotesReq) (*types.ListNotesResp, error)
	ListMine(ctx context.Context, uploaderID uint64, page, perPage int) (*types.ListNotesResp, error)
	ListPending(ctx context.Context, page, perPage int) (*types.ListNotesResp, error)
	ListAll(ctx context.Context, page, perPage int) (*types.ListNotesResp, error)
	// Download 打开文件并累加下载次数，调用方负责关闭 Body
	Download(ctx context.Context, noteID uint64) (*types.DownloadFile, error)
	Facet(ctx context.Context, field string) ([]string, error)
	Facets(ctx context.Context) (*types.FacetsResp, error)
}

type NoteService struct {
	Config     *config.Config
	NoteDAO    *dao.NoteDAO
	Storage    IStorage
	FacetCache *cache.FacetStorage
	Publisher  IEventPublisher
}

// Upload 先写文件再落库，落库失败删除刚写入的文件
func (s *NoteService) Upload(ctx context.Context, uploaderID uint64, req *types.UploadNoteRequest, file *multipart.FileHeader) (*types.NoteItem, error) {
	if file == nil {
		return nil, ErrNoFile
	}
	if file.Filename == "" {
		return nil, ErrNoFileSelected
	}
	filename, fileType, ok := SanitizeFilename(file.Filename)
	if !ok {
		uploadsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrFileType
	}

	title := strings.TrimSpace(req.Title)
	subject := strings.TrimSpace(req.Subject)
	course := strings.TrimSpace(req.Course)
	semester := strings.TrimSpace(req.Semester)
	if title == "" || subject == "" || course == "" || semester == "" {
		uploadsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrMissingFields
	}
	if s.Config.Storage.MaxFileSize > 0 && file.Size > s.Config.Storage.MaxFileSize {
		uploadsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		uploadsTotal.WithLabelValues("failed").Inc()
		return nil, response.Internal("Upload failed", fmt.Errorf("open multipart file: %w", err))
	}
	defer src.Close()

	key := StorageKey(filename)
	if _, err := s.Storage.Save(ctx, key, src); err != nil {
		uploadsTotal.WithLabelValues("failed").Inc()
		return nil, response.Internal("Upload failed", fmt.Errorf("save file: %w", err))
	}

	note := &models.Note{
		Title:       title,
		Subject:     subject,
		Course:      course,
		Semester:    semester,
		Filename:    filename,
		FilePath:    key,
		FileType:    fileType,
		Description: strings.TrimSpace(req.Description),
		UploadDate:  now(),
		UploaderID:  uploaderID,
	}
	if err := s.NoteDAO.Create(ctx, note); err != nil {
		if delErr := s.Storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.L.Error("remove file after failed insert", zap.String("key", key), zap.Error(delErr))
		}
		uploadsTotal.WithLabelValues("failed").Inc()
		return nil, response.Internal("Upload failed", fmt.Errorf("create note: %w", err))
	}

	uploadsTotal.WithLabelValues("ok").Inc()
	log.L.Info("note uploaded",
		zap.Uint64("note_id", note.ID),
		zap.Uint64("uploader_id", uploaderID),
		zap.String("file_type", fileType),
	)
	s.Publisher.Publish(ctx, &NoteEvent{
		Event:      EventNoteUploaded,
		NoteID:     note.ID,
		UploaderID: uploaderID,
		ActorID:    uploaderID,
		At:         note.UploadDate,
	})
	return toNoteItem(note), nil
}

func (s *NoteService) List(ctx context.Context, req *types.ListNotesReq) (*types.ListNotesResp, error) {
	approved := true
	return s.page(ctx, dao.NoteQuery{
		Approved: &approved,
		Subject:  strings.TrimSpace(req.Subject),
		Course:   strings.TrimSpace(req.Course),
		Semester: strings.TrimSpace(req.Semester),
		Search:   strings.TrimSpace(req.Search),
	}, req.Page, req.PerPage)
}

// ListMine 自己上传的笔记，包括待审核的
func (s *NoteService) ListMine(ctx context.Context, uploaderID uint64, page, perPage int) (*types.ListNotesResp, error) {
	return s.page(ctx, dao.NoteQuery{UploaderID: uploaderID}, page, perPage)
}

func (s *NoteService) ListPending(ctx context.Context, page, perPage int) (*types.ListNotesResp, error) {
	approved := false
	return s.page(ctx, dao.NoteQuery{Approved: &approved}, page, perPage)
}

func (s *NoteService) ListAll(ctx context.Context, page, perPage int) (*types.ListNotesResp, error) {
	return s.page(ctx, dao.NoteQuery{}, page, perPage)
}

func (s *NoteService) page(ctx context.Context, q dao.NoteQuery, page, perPage int) (*types.ListNotesResp, error) {
	if page < 1 {
		page = utils.DefaultPage
	}
	if perPage < 1 {
		perPage = utils.DefaultPerPage
	}
	if perPage > utils.MaxPerPage {
		perPage = utils.MaxPerPage
	}
	q.Limit = perPage
	q.Offset = utils.Offset(page, perPage)

	notes, total, err := s.NoteDAO.Page(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("page notes: %w", err)
	}
	items := make([]*types.NoteItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, toNoteItem(n))
	}
	return &types.ListNotesResp{
		Notes:       items,
		Total:       total,
		Pages:       utils.TotalPages(total, perPage),
		CurrentPage: page,
		PerPage:     perPage,
	}, nil
}

func (s *NoteService) Download(ctx context.Context, noteID uint64) (*types.DownloadFile, error) {
	note, err := s.NoteDAO.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	if !note.IsApproved {
		return nil, ErrNoteNotApproved
	}

	blob, err := s.Storage.Open(ctx, note.FilePath)
	if err != nil {
		return nil, response.Internal("Download failed", fmt.Errorf("open file %s: %w", note.FilePath, err))
	}

	// 计数提交后再开始传输
	if err := s.NoteDAO.IncrDownloadCount(ctx, noteID); err != nil {
		blob.Body.Close()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("increment download count: %w", err)
	}
	downloadsTotal.Inc()

	return &types.DownloadFile{
		Filename:    note.Filename,
		ContentType: contentTypeOf(note.FileType),
		Size:        blob.Size,
		Body:        blob.Body,
	}, nil
}

// Facet 已审核笔记某一维度的去重值，优先读缓存。
// 代数在查库之前读取，与审核并发时写入的是旧代数的键
func (s *NoteService) Facet(ctx context.Context, field string) ([]string, error) {
	gen, err := s.FacetCache.Generation(ctx)
	cached := err == nil
	if err != nil {
		log.L.Warn("read facet generation", zap.Error(err))
	}
	if cached {
		if values, ok := s.FacetCache.Get(ctx, gen, field); ok {
			return values, nil
		}
	}

	values, err := s.NoteDAO.DistinctApproved(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	if cached {
		if err := s.FacetCache.Set(ctx, gen, field, values, s.Config.Cache.FacetTTL); err != nil {
			log.L.Warn("cache facet", zap.String("field", field), zap.Error(err))
		}
	}
	return values, nil
}

func (s *NoteService) Facets(ctx context.Context) (*types.FacetsResp, error) {
	resp := &types.FacetsResp{}
	eg, egCtx := errgroup.WithContext(ctx)
	targets := map[string]*[]string{
		FacetSubject:  &resp.Subjects,
		FacetCourse:   &resp.Courses,
		FacetSemester: &resp.Semesters,
	}
	for field, dst := range targets {
		eg.Go(func() error {
			values, err := s.Facet(egCtx, field)
			if err != nil {
				return err
			}
			*dst = values
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func toNoteItem(n *models.Note) *types.NoteItem {
	item := &types.NoteItem{
		ID:            n.ID,
		Title:         n.Title,
		Subject:       n.Subject,
		Course:        n.Course,
		Semester:      n.Semester,
		Filename:      n.Filename,
		FileType:      n.FileType,
		Description:   n.Description,
		UploadDate:    n.UploadDate,
		UploaderID:    n.UploaderID,
		IsApproved:    n.IsApproved,
		DownloadCount: n.DownloadCount,
	}
	if n.Uploader != nil {
		item.UploaderName = n.Uploader.Username
	}
	return item
}
