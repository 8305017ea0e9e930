package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stratocost/stratocost/internal/apiserver/middleware"
	"github.com/stratocost/stratocost/internal/common/dto"
	"github.com/stratocost/stratocost/internal/common/errorx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createAnalysis(c *gin.Context) {
	var req dto.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}

	a, err := h.svc.Create(c.Request.Context(), middleware.CallerFrom(c), req.Title)
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAnalysisResponse(a))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	out := make([]dto.AnalysisResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAnalysisResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	resp := toAnalysisResponse(a)
	if a.Inputs != "" {
		resp.Inputs = json.RawMessage(a.Inputs)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateInputs(c *gin.Context) {
	var req dto.UpdateInputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}

	results, err := h.svc.UpdateInputs(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Inputs)
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) saveAnalysis(c *gin.Context) {
	var req dto.SaveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}

	v, err := h.svc.Save(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Title, req.EditableContent)
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.VersionResponse{
		AnalysisID:      v.AnalysisID,
		VersionNumber:   v.VersionNumber,
		CreatedBy:       v.CreatedBy,
		CreatedAt:       v.CreatedAt,
		Inputs:          json.RawMessage(v.Inputs),
		Results:         json.RawMessage(v.Results),
		EditableContent: json.RawMessage(v.EditableContent),
	})
}

func (h *Handler) lockAnalysis(c *gin.Context) {
	if err := h.svc.Lock(c.Request.Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) unlockAnalysis(c *gin.Context) {
	if err := h.svc.Unlock(c.Request.Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) reassignAnalysis(c *gin.Context) {
	var req dto.ReassignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("%s", err.Error()))
		return
	}

	if err := h.svc.ReassignTenant(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.TenantID); err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listVersions(c *gin.Context) {
	versions, err := h.svc.ListVersions(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (h *Handler) getVersion(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		h.errs.HandleError(c, errorx.ErrInvalidInput.WithMessage("version number must be an integer"))
		return
	}

	v, err := h.svc.GetVersion(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), number)
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VersionResponse{
		AnalysisID:      v.AnalysisID,
		VersionNumber:   v.VersionNumber,
		CreatedBy:       v.CreatedBy,
		CreatedAt:       v.CreatedAt,
		Inputs:          json.RawMessage(v.Inputs),
		Results:         json.RawMessage(v.Results),
		EditableContent: json.RawMessage(v.EditableContent),
	})
}
