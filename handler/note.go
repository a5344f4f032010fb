package handler

import (
	"NoteShare/config"
	"NoteShare/middleware"
	"NoteShare/pkg/context"
	"NoteShare/pkg/response"
	"NoteShare/pkg/utils"
	"NoteShare/service"
	"NoteShare/types"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// multipart 表单字段的额外余量
const formOverhead = 1 << 20

type Note struct {
	Config      *config.Config
	NoteService service.INoteService
}

func (n *Note) RegisterRouter(r gin.IRouter) {
	authorize := middleware.RequireAuth()
	r.POST("/upload", authorize, context.Wrap(n.Upload))
	r.GET("/notes", context.Wrap(n.List))
	r.GET("/notes/:id/download", context.Wrap(n.Download))
	r.GET("/my-notes", authorize, context.Wrap(n.MyNotes))

	r.GET("/subjects", context.Wrap(n.Subjects))
	r.GET("/courses", context.Wrap(n.Courses))
	r.GET("/semesters", context.Wrap(n.Semesters))
	r.GET("/facets", context.Wrap(n.Facets))
}

// Upload 上传笔记
func (n *Note) Upload(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return service.ErrUnauthenticated
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n.Config.Storage.MaxFileSize+formOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return service.ErrFileTooLarge
		case errors.Is(err, http.ErrMissingFile) && hasFormValue(c, "file"):
			// 未选择文件时浏览器发送 filename=""，解析后落在普通字段里
			return service.ErrNoFileSelected
		default:
			return service.ErrNoFile
		}
	}

	var req types.UploadNoteRequest
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		return service.ErrMissingFields
	}
	note, err := n.NoteService.Upload(c.Request.Context(), uid, &req, header)
	if err != nil {
		return err
	}
	response.Created(c, types.NoteResp{Message: "Note uploaded successfully", Note: note})
	return nil
}

func hasFormValue(c *gin.Context, key string) bool {
	form := c.Request.MultipartForm
	if form == nil {
		return false
	}
	_, ok := form.Value[key]
	return ok
}

// List 已审核笔记列表
func (n *Note) List(c *gin.Context) error {
	var req types.ListNotesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return errBadRequest
	}
	req.Page, req.PerPage = utils.ParsePage(c.Query("page"), c.Query("per_page"))
	resp, err := n.NoteService.List(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (n *Note) MyNotes(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return service.ErrUnauthenticated
	}
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"))
	resp, err := n.NoteService.ListMine(c.Request.Context(), uid, page, perPage)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Download 下载文件，成功后下载数 +1
func (n *Note) Download(c *gin.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	file, err := n.NoteService.Download(c.Request.Context(), id)
	if err != nil {
		return err
	}
	defer file.Body.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, file.Filename),
	})
	return nil
}

func (n *Note) Subjects(c *gin.Context) error {
	values, err := n.NoteService.Facet(c.Request.Context(), service.FacetSubject)
	if err != nil {
		return err
	}
	response.Success(c, types.SubjectsResp{Subjects: values})
	return nil
}

func (n *Note) Courses(c *gin.Context) error {
	values, err := n.NoteService.Facet(c.Request.Context(), service.FacetCourse)
	if err != nil {
		return err
	}
	response.Success(c, types.CoursesResp{Courses: values})
	return nil
}

func (n *Note) Semesters(c *gin.Context) error {
	values, err := n.NoteService.Facet(c.Request.Context(), service.FacetSemester)
	if err != nil {
		return err
	}
	response.Success(c, types.SemestersResp{Semesters: values})
	return nil
}

// Facets 一次返回全部筛选项
func (n *Note) Facets(c *gin.Context) error {
	resp, err := n.NoteService.Facets(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// noteID 非数字 ID 与不存在的笔记同样处理
func noteID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrNoteNotFound
	}
	return id, nil
}
