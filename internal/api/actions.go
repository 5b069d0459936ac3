package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/signalpost/rosetta/internal/translator"
)

func (s *Server) handleTranslate(c *echo.Context) error {
	if s.service == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "translation service not configured", "", "")
	}
	req, err := decodeJSON[TranslateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	id := newActionID()
	c.Response().Header().Set(actionIDHeader, id)

	out, err := s.service.Translate(c.Request().Context(), req.Text, req.SrcLang, req.TgtLang)
	if err != nil {
		return s.actionError(c, id, "translate", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleFillMask(c *echo.Context) error {
	if s.service == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "translation service not configured", "", "")
	}
	req, err := decodeJSON[FillMaskRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	topk := translator.DefaultTopK
	if req.TopK != nil {
		topk = *req.TopK
	}

	id := newActionID()
	c.Response().Header().Set(actionIDHeader, id)

	out, err := s.service.FillMask(c.Request().Context(), req.Text, req.SrcLang, topk)
	if err != nil {
		return s.actionError(c, id, "fill_mask", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleSupportedLanguages(c *echo.Context) error {
	if s.service == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "translation service not configured", "", "")
	}
	return c.JSON(http.StatusOK, s.service.SupportedLanguages())
}

// actionError maps request mistakes to 400 and everything else to 500.
func (s *Server) actionError(c *echo.Context, id, action string, err error) error {
	if errors.Is(err, translator.ErrValidation) {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), translator.ValidationParam(err), "")
	}
	s.log.Error("action failed", "action", action, "id", id, "error", err)
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
}
