package handler

import (
	"NoteShare/middleware"
	"NoteShare/pkg/context"
	"NoteShare/pkg/response"
	"NoteShare/pkg/utils"
	"NoteShare/service"
	"NoteShare/types"

	"github.com/gin-gonic/gin"
)

type Admin struct {
	NoteService       service.INoteService
	ModerationService service.IModerationService
}

func (a *Admin) RegisterRouter(r gin.IRouter) {
	g := r.Group("/admin", middleware.RequireAdmin())
	g.GET("/pending-notes", context.Wrap(a.PendingNotes))
	g.GET("/all-notes", context.Wrap(a.AllNotes))
	g.POST("/notes/:id/approve", context.Wrap(a.Approve))
	g.DELETE("/notes/:id/reject", context.Wrap(a.Reject))
}

// PendingNotes 待审核列表
func (a *Admin) PendingNotes(c *gin.Context) error {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"))
	resp, err := a.NoteService.ListPending(c.Request.Context(), page, perPage)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *Admin) AllNotes(c *gin.Context) error {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"))
	resp, err := a.NoteService.ListAll(c.Request.Context(), page, perPage)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Approve 审核通过
func (a *Admin) Approve(c *gin.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	uid, _ := context.GetUserID(c)
	note, err := a.ModerationService.Approve(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, types.NoteResp{Message: "Note approved successfully", Note: note})
	return nil
}

// Reject 驳回并删除
func (a *Admin) Reject(c *gin.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	uid, _ := context.GetUserID(c)
	if err := a.ModerationService.Reject(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.Message(c, "Note rejected and deleted successfully")
	return nil
}
