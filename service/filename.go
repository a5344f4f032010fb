package service

import (
	"NoteShare/models"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxBaseNameLen = 100

// SanitizeFilename 只保留文件名本身的安全字符，扩展名必须在白名单内。
// 返回清洗后的文件名和大写的文件类型，扩展名不合法时 ok 为 false
func SanitizeFilename(name string) (sanitized, fileType string, ok bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	fileType = models.FileTypeOf(name)
	if fileType == "" {
		return "", "", false
	}
	dot := strings.LastIndex(name, ".")
	base, ext := name[:dot], name[dot+1:]

	var b strings.Builder
	lastUnderscore := false
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.'):
			b.WriteRune(r)
			lastUnderscore = false
		case r == '_' || unicode.IsSpace(r):
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	cleaned := strings.Trim(b.String(), "._-")
	if len(cleaned) > maxBaseNameLen {
		cleaned = cleaned[:maxBaseNameLen]
	}
	if cleaned == "" {
		cleaned = "file"
	}
	return cleaned + "." + ext, fileType, true
}

// StorageKey {uuid}_{sanitized}
func StorageKey(sanitized string) string {
	return uuid.NewString() + "_" + sanitized
}

var contentTypes = map[string]string{
	"PDF":  "application/pdf",
	"DOC":  "application/msword",
	"DOCX": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"PPT":  "application/vnd.ms-powerpoint",
	"PPTX": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

func contentTypeOf(fileType string) string {
	if ct, ok := contentTypes[fileType]; ok {
		return ct
	}
	return "application/octet-stream"
}
