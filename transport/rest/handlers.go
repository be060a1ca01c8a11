package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-contract/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-contract/internal/contract"
)

const senderHeader = "X-Sender"

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	sender := r.Header.Get(senderHeader)
	if sender == "" {
		writeError(w, http.StatusUnauthorized, "missing "+senderHeader+" header")
		return
	}

	msg, ok := decodeMessage(w, r)
	if !ok {
		return
	}

	resp, err := that.host.Execute(r.Context(), sender, msg)
	if err != nil {
		that.writeContractError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (that *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	msg, ok := decodeMessage(w, r)
	if !ok {
		return
	}

	that.query(w, r, msg)
}

func (that *Server) handleAllGames(w http.ResponseWriter, r *http.Request) {
	that.query(w, r, contract.Message{Action: contract.QueryAllGamesList})
}

func (that *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	host, err := pathParam(r, "host")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	guest, err := pathParam(r, "guest")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := contract.NewMessage(contract.QueryGames, contract.GamesPayload{
		Host:  host,
		Guest: guest,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	that.query(w, r, msg)
}

// pathParam - the named route segment with its escaping removed. The router matches on
// RawPath when it is set, so an identity containing "/" arrives as "%2F"; otherwise the
// segment is already decoded.
func pathParam(r *http.Request, name string) (string, error) {
	param := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return param, nil
	}

	value, err := url.PathUnescape(param)
	if err != nil {
		return "", fmt.Errorf("invalid %s in path: %w", name, err)
	}

	return value, nil
}

func (that *Server) query(w http.ResponseWriter, r *http.Request, msg contract.Message) {
	resp, err := that.host.Query(r.Context(), msg)
	if err != nil {
		that.writeContractError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (that *Server) writeContractError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	writeError(w, status, err.Error())
}

// statusFor - maps contract and domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameInProgress),
		errors.Is(err, apperror.ErrNoPendingInvitation),
		errors.Is(err, apperror.ErrNoGameInProgress):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrNotInvolved):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrIllegalCell):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contract.ErrInvalidPayload),
		errors.Is(err, contract.ErrInvalidIdentity),
		errors.Is(err, contract.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeMessage(w http.ResponseWriter, r *http.Request) (contract.Message, bool) {
	var msg contract.Message

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return contract.Message{}, false
	}

	return msg, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
