/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file holds the authenticated user surface: logout, profile update,
presence status, and the admin mute toggle.
*/
package handler

import (
	"net/http"
	"strconv"
	"time"

	"chatapp/internal/app/account"
	"chatapp/internal/pkg/errs"
	"chatapp/internal/pkg/logx"
	"chatapp/internal/pkg/req"
	"chatapp/internal/pkg/resp"
)

// HandleLogout transitions the identity offline (or deletes a guest) and
// revokes the session pair.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := sessionEmail(r)

		u, err := deps.Presence.Logout(r.Context(), email)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		deps.Directory.Revoke(sessionToken(r), email)

		logx.Info("User logged out", "nickname", u.Nickname)
		resp.RespondSuccess(w, r, map[string]any{"user": u})
	}
}

type UpdateInput struct {
	Email       string `json:"email"`
	Nickname    string `json:"nickname"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	Photo       string `json:"photo"`
	Description string `json:"description"`
	DateOfBirth string `json:"dateOfBirth"`
}

// HandleUpdate applies profile changes to the session's account. Email and
// nickname changes ripple through historical messages via the propagator.
func HandleUpdate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input UpdateInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		params := account.UpdateParams{
			Email:       input.Email,
			Nickname:    input.Nickname,
			Name:        input.Name,
			Password:    input.Password,
			Photo:       input.Photo,
			Description: input.Description,
		}

		if input.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", input.DateOfBirth)
			if err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			params.DateOfBirth = &dob
		}

		u, err := deps.Accounts.Update(r.Context(), sessionEmail(r), params)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": u})
	}
}

// HandleMute flips the mute flag of the target user. The presence machine
// rejects non-admin actors.
func HandleMute(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		u, serviceErr := deps.Presence.ToggleMute(r.Context(), sessionEmail(r), targetID)
		if serviceErr != nil {
			respondServiceError(w, r, serviceErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": u})
	}
}

// HandleStatus moves the session's account between online and away.
// Unrecognized status strings change nothing and still answer success.
func HandleStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		u, err := deps.Presence.SetStatus(r.Context(), sessionEmail(r), status)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": u})
	}
}
