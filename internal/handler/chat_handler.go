/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file holds the chat surface: room resolution, message posting, and
history queries for the broadcast and private rooms.
*/
package handler

import (
	"net/http"
	"strconv"
	"time"

	"chatapp/internal/pkg/errs"
	"chatapp/internal/pkg/req"
	"chatapp/internal/pkg/resp"
)

// HandleActiveUsers lists everyone who is not offline, admins first.
func HandleActiveUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Presence.ActiveUsers(r.Context())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"users": users})
	}
}

// HandlePrivateRoom resolves (and lazily creates) the private room between
// the session's account and the receiver id, returning its ordered history.
func HandlePrivateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		receiverID, err := strconv.ParseInt(r.URL.Query().Get("receiver"), 10, 64)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		sender, serviceErr := deps.Presence.UserByEmail(r.Context(), sessionEmail(r))
		if serviceErr != nil {
			respondServiceError(w, r, serviceErr)
			return
		}

		history, serviceErr := deps.Chat.ResolvePrivateRoom(r.Context(), sender.ID, receiverID)
		if serviceErr != nil {
			respondServiceError(w, r, serviceErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": history})
	}
}

// HandleRoomHistory downloads the full history of a known room.
func HandleRoomHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("roomId")
		if roomID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		history, err := deps.Chat.RoomHistory(r.Context(), roomID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": history})
	}
}

type PostRoomInput struct {
	RoomID   string `json:"roomId"`
	Sender   string `json:"sender"`
	Content  string `json:"content"`
	Receiver string `json:"receiver"`
}

// HandlePostRoom appends a message to an already-known private room.
func HandlePostRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input PostRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.RoomID == "" || input.Content == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		m, err := deps.Chat.PostToRoom(r.Context(), input.RoomID, input.Sender, input.Content, input.Receiver)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": m})
	}
}

type PostMainInput struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// HandlePostMain appends a message to the broadcast room. A muted sender is
// rejected before anything is persisted.
func HandlePostMain(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input PostMainInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Content == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		m, err := deps.Chat.PostToBroadcast(r.Context(), input.Sender, input.Content)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": m})
	}
}

// HandleMainNewest returns the newest `size` broadcast messages.
func HandleMainNewest(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		size, err := strconv.Atoi(r.URL.Query().Get("size"))
		if err != nil || size <= 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		history, serviceErr := deps.Chat.MainRoomNewest(r.Context(), size)
		if serviceErr != nil {
			respondServiceError(w, r, serviceErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": history})
	}
}

// HandleMainDownload returns broadcast messages from the given epoch second
// until now; time=0 downloads everything.
func HandleMainDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		since, err := strconv.ParseInt(r.URL.Query().Get("time"), 10, 64)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		history, serviceErr := deps.Chat.MainRoomSince(r.Context(), since, time.Now().UTC().Unix())
		if serviceErr != nil {
			respondServiceError(w, r, serviceErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": history})
	}
}
