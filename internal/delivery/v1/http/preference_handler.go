package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/solar-store/internal/usecase"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/google/uuid"
)

type PreferenceHandler struct {
	prefs  usecase.PreferenceUC
	logger logger.Logger
}

func NewPreferenceHandler(prefs usecase.PreferenceUC, logger logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, logger: logger}
}

// sessionID берёт X-Session-ID из запроса; если его нет, выдаёт новый и возвращает в ответе.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(sessionHeader))
	if id == "" {
		id = uuid.NewString()
	}

	w.Header().Set(sessionHeader, id)
	return id
}

// getTheme
//
//	@Summary	Настройка темы
//	@Tags		preferences
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"Сессия"
//	@Success	200				{object}	ThemeResponse
//	@Router		/preferences/theme [get]
func (p *PreferenceHandler) getTheme(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	pref, err := p.prefs.GetTheme(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ThemeResponse{SessionID: pref.SessionID, Dark: pref.Dark})
}

// setTheme
//
//	@Summary	Сохранить настройку темы
//	@Tags		preferences
//	@Accept		json
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Сессия"
//	@Param		body			body		ThemeRequest	true	"Тема"
//	@Success	200				{object}	ThemeResponse
//	@Failure	400				{object}	ErrorResponse
//	@Router		/preferences/theme [put]
func (p *PreferenceHandler) setTheme(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	var req ThemeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	pref := usecase.NewThemePreference(id, req.Dark)
	if err := p.prefs.SetTheme(r.Context(), pref); err != nil {
		p.logger.Warnf("set theme: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ThemeResponse{SessionID: pref.SessionID, Dark: pref.Dark})
}
