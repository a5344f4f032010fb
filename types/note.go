package types

import (
	"io"
	"time"
)

// UploadNoteRequest 上传笔记表单
type UploadNoteRequest struct {
	Title       string `form:"title"`
	Subject     string `form:"subject"`
	Course      string `form:"course"`
	Semester    string `form:"semester"`
	Description string `form:"description"`
}

// ListNotesReq 公开列表查询条件
type ListNotesReq struct {
	Subject  string `form:"subject"`
	Course   string `form:"course"`
	Semester string `form:"semester"`
	Search   string `form:"search"`
	Page     int    `form:"-"`
	PerPage  int    `form:"-"`
}

// NoteItem 对外的笔记结构，不包含存储路径
type NoteItem struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	Course        string    `json:"course"`
	Semester      string    `json:"semester"`
	Filename      string    `json:"filename"`
	FileType      string    `json:"file_type"`
	Description   string    `json:"description"`
	UploadDate    time.Time `json:"upload_date"`
	UploaderID    uint64    `json:"uploader_id"`
	UploaderName  string    `json:"uploader_name"`
	IsApproved    bool      `json:"is_approved"`
	DownloadCount int64     `json:"download_count"`
}

type ListNotesResp struct {
	Notes       []*NoteItem `json:"notes"`
	Total       int64       `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
}

type NoteResp struct {
	Message string    `json:"message"`
	Note    *NoteItem `json:"note"`
}

// DownloadFile 下载结果，调用方负责关闭 Body
type DownloadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

type SubjectsResp struct {
	Subjects []string `json:"subjects"`
}

type CoursesResp struct {
	Courses []string `json:"courses"`
}

type SemestersResp struct {
	Semesters []string `json:"semesters"`
}

type FacetsResp struct {
	Subjects  []string `json:"subjects"`
	Courses   []string `json:"courses"`
	Semesters []string `json:"semesters"`
}
