package service

import (
	"NoteShare/pkg/response"
	"net/http"
)

var (
	ErrNoFile         = response.NewError(http.StatusBadRequest, "No file provided")
	ErrNoFileSelected = response.NewError(http.StatusBadRequest, "No file selected")
	ErrFileType       = response.NewError(http.StatusBadRequest, "File type not allowed. Only PDF, DOC, DOCX, PPT, PPTX are allowed")
	ErrFileTooLarge   = response.NewError(http.StatusBadRequest, "File too large")
	ErrMissingFields  = response.NewError(http.StatusBadRequest, "Title, subject, course, and semester are required")

	ErrNoteNotFound        = response.NewError(http.StatusNotFound, "Note not found")
	ErrNoteNotApproved     = response.NewError(http.StatusForbidden, "Note not approved for download")
	ErrNoteAlreadyApproved = response.NewError(http.StatusConflict, "Approved notes cannot be rejected")

	ErrRegisterFields     = response.NewError(http.StatusBadRequest, "Username, email, and password are required")
	ErrPasswordTooShort   = response.NewError(http.StatusBadRequest, "Password must be at least 6 characters")
	ErrUserExists         = response.NewError(http.StatusBadRequest, "Username or email already exists")
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "Invalid username or password")
	ErrUnauthenticated    = response.NewError(http.StatusUnauthorized, "Authentication required")
	ErrForbidden          = response.NewError(http.StatusForbidden, "Admin access required")
)
