package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/lonelyhost/panel/internal/dispatch"
	"github.com/lonelyhost/panel/internal/domain"
	"github.com/lonelyhost/panel/internal/provider"
)

// ActionHandler maps the panel's HTTP routes onto dispatcher actions.
type ActionHandler struct {
	dispatcher      *dispatch.Dispatcher
	suggestions     *provider.SuggestionClient
	worldEdit       *provider.WorldEditTrigger
	defaultOperator string
}

// NewActionHandler creates the action handler. defaultOperator identifies the
// acting user when a request carries no X-Panel-User header.
func NewActionHandler(d *dispatch.Dispatcher, ai *provider.SuggestionClient, we *provider.WorldEditTrigger, defaultOperator string) *ActionHandler {
	return &ActionHandler{
		dispatcher:      d,
		suggestions:     ai,
		worldEdit:       we,
		defaultOperator: defaultOperator,
	}
}

// actingUser resolves the operator identity for purchase actions. Identity is
// explicit: the dispatcher never assumes a global current user.
func (h *ActionHandler) actingUser(r *http.Request) string {
	if id := r.Header.Get("X-Panel-User"); id != "" {
		return id
	}
	return h.defaultOperator
}

// intField is a JSON integer that also accepts a quoted decimal string, which
// is what the dashboard's prompt() inputs submit.
type intField struct {
	value int64
	set   bool
}

func (f *intField) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}

type idRequest struct {
	ID string `json:"id"`
}

// decodeID decodes a body carrying a single required id field.
func decodeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req idRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return "", false
	}
	if req.ID == "" {
		RespondError(w, domain.ErrValidation("id is required"))
		return "", false
	}
	return req.ID, true
}

// respondAction writes the dispatcher's result message or error.
func respondAction(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// StartServer handles POST /servers/start.
func (h *ActionHandler) StartServer(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.StartServer(r.Context(), id)
	respondAction(w, msg, err)
}

// StopServer handles POST /servers/stop.
func (h *ActionHandler) StopServer(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.StopServer(r.Context(), id)
	respondAction(w, msg, err)
}

// ChangeVersion handles POST /servers/change-version.
func (h *ActionHandler) ChangeVersion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string `json:"id"`
		Version string `json:"version"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.ID == "" {
		RespondError(w, domain.ErrValidation("id is required"))
		return
	}
	if req.Version == "" {
		RespondError(w, domain.ErrValidation("version is required"))
		return
	}
	msg, err := h.dispatcher.ChangeVersion(r.Context(), req.ID, req.Version)
	respondAction(w, msg, err)
}

// AdjustResources handles POST /servers/adjust-resources.
func (h *ActionHandler) AdjustResources(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID  string   `json:"id"`
		CPU intField `json:"cpu"`
		RAM intField `json:"ram"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.ID == "" {
		RespondError(w, domain.ErrValidation("id is required"))
		return
	}
	if !req.CPU.set || !req.RAM.set {
		RespondError(w, domain.ErrValidation("cpu and ram are required"))
		return
	}
	msg, err := h.dispatcher.AdjustResources(r.Context(), req.ID, int(req.CPU.value), int(req.RAM.value))
	respondAction(w, msg, err)
}

// InstallAddon handles POST /addons/install.
func (h *ActionHandler) InstallAddon(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.InstallAddon(r.Context(), h.actingUser(r), id)
	respondAction(w, msg, err)
}

// PurchaseTheme handles POST /themes/purchase.
func (h *ActionHandler) PurchaseTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.PurchaseTheme(r.Context(), h.actingUser(r), id)
	respondAction(w, msg, err)
}

// CreateBackup handles POST /backups/create. The id in the body is a server id.
func (h *ActionHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.CreateBackup(r.Context(), id)
	respondAction(w, msg, err)
}

// RestoreBackup handles POST /backups/restore. The id in the body is a backup id.
func (h *ActionHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.RestoreBackup(r.Context(), id)
	respondAction(w, msg, err)
}

// ManageDatabase handles POST /databases/manage.
func (h *ActionHandler) ManageDatabase(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.ManageDatabase(r.Context(), id)
	respondAction(w, msg, err)
}

// RunTask handles POST /tasks/run.
func (h *ActionHandler) RunTask(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.RunTask(r.Context(), id)
	respondAction(w, msg, err)
}

// KickPlayer handles POST /players/kick.
func (h *ActionHandler) KickPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.KickPlayer(r.Context(), id)
	respondAction(w, msg, err)
}

// BanPlayer handles POST /players/ban.
func (h *ActionHandler) BanPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.BanPlayer(r.Context(), id)
	respondAction(w, msg, err)
}

type economyRequest struct {
	PlayerID string   `json:"playerId"`
	Amount   intField `json:"amount"`
}

func decodeEconomy(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	var req economyRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return "", 0, false
	}
	if req.PlayerID == "" {
		RespondError(w, domain.ErrValidation("playerId is required"))
		return "", 0, false
	}
	if !req.Amount.set {
		RespondError(w, domain.ErrValidation("amount must be an integer"))
		return "", 0, false
	}
	return req.PlayerID, req.Amount.value, true
}

// AddFunds handles POST /economy/add.
func (h *ActionHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	playerID, amount, ok := decodeEconomy(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.AddFunds(r.Context(), playerID, amount)
	respondAction(w, msg, err)
}

// RemoveFunds handles POST /economy/remove.
func (h *ActionHandler) RemoveFunds(w http.ResponseWriter, r *http.Request) {
	playerID, amount, ok := decodeEconomy(w, r)
	if !ok {
		return
	}
	msg, err := h.dispatcher.RemoveFunds(r.Context(), playerID, amount)
	respondAction(w, msg, err)
}

// AISuggestions handles POST /ai/suggestions.
func (h *ActionHandler) AISuggestions(w http.ResponseWriter, r *http.Request) {
	text, err := h.suggestions.Suggest(r.Context())
	if err != nil {
		RespondError(w, domain.ErrInternal("Failed to get AI suggestions", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": text})
}

// WorldEdit handles POST /world/edit.
func (h *ActionHandler) WorldEdit(w http.ResponseWriter, r *http.Request) {
	msg := h.worldEdit.Open(r.Context())
	RespondJSON(w, http.StatusOK, map[string]string{"message": msg})
}
