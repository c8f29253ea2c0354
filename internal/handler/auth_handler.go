/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file holds the sign-in surface: registration, activation, password
login, and guest login.
*/
package handler

import (
	"net/http"

	"chatapp/internal/pkg/logx"
	"chatapp/internal/pkg/req"
	"chatapp/internal/pkg/resp"

	"chatapp/internal/pkg/errs"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account and dispatches its verification code.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Accounts.Register(r.Context(), input.Name, input.Email, input.Password)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		logx.Info("Account registered, awaiting activation", "email", u.Email)
		resp.RespondSuccess(w, r, map[string]any{"user": u})
	}
}

type ActivateInput struct {
	Email      string `json:"email"`
	VerifyCode string `json:"verifyCode"`
}

// HandleActivate enables an account when the verification code checks out.
func HandleActivate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ActivateInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Accounts.Activate(r.Context(), input.Email, input.VerifyCode)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": u})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues the session token. A previous
// session of the same identity is displaced by the new token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, token, err := deps.Accounts.Login(r.Context(), input.Email, input.Password)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  u,
		})
	}
}

type GuestLoginInput struct {
	Name string `json:"name"`
}

// HandleGuestLogin creates a transient guest account and issues its token.
func HandleGuestLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input GuestLoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, token, err := deps.Accounts.GuestLogin(r.Context(), input.Name)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  u,
		})
	}
}

// respondServiceError maps a service error onto the response envelope,
// falling back to ErrUnknown for anything that is not a CustomError.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if customErr, ok := err.(*errs.CustomError); ok {
		resp.RespondError(w, r, customErr)
		return
	}
	resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
}
