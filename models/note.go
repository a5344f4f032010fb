package models

import (
	"strings"
	"time"
)

// 允许上传的文件扩展名
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"ppt":  {},
	"pptx": {},
}

type Note struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Subject       string    `gorm:"column:subject;type:varchar(100);not null" json:"subject"`
	Course        string    `gorm:"column:course;type:varchar(100);not null" json:"course"`
	Semester      string    `gorm:"column:semester;type:varchar(50);not null" json:"semester"`
	Filename      string    `gorm:"column:filename;type:varchar(255);not null" json:"filename"`
	FilePath      string    `gorm:"column:file_path;type:varchar(500);not null" json:"-"`
	FileType      string    `gorm:"column:file_type;type:varchar(10);not null" json:"file_type"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	UploadDate    time.Time `gorm:"column:upload_date;not null;index:idx_approved_date,priority:2" json:"upload_date"`
	UploaderID    uint64    `gorm:"column:uploader_id;not null;index:idx_uploader" json:"uploader_id"`
	IsApproved    bool      `gorm:"column:is_approved;not null;default:false;index:idx_approved_date,priority:1" json:"is_approved"`
	DownloadCount int64     `gorm:"column:download_count;not null;default:0" json:"download_count"`

	Uploader *User `gorm:"foreignKey:UploaderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Note) TableName() string {
	return "notes"
}

// FileTypeOf 根据文件名取大写扩展名，不在白名单内返回空串
func FileTypeOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	ext := strings.ToLower(filename[idx+1:])
	if _, ok := AllowedExtensions[ext]; !ok {
		return ""
	}
	return strings.ToUpper(ext)
}
