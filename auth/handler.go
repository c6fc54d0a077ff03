package auth

import (
	cerror "errors"
	"net/http"

	"github.com/Richard0070/api-denzel/logging"
	"github.com/Richard0070/api-denzel/responses"
	"github.com/Richard0070/api-denzel/services"
	"github.com/Richard0070/api-denzel/store"
	"github.com/gin-gonic/gin"
)

const (
	// StateCookieName carries the per-attempt state between the redirect to
	// the provider and the callback.
	StateCookieName = "client_state"
	// StateCookieMaxAge bounds how long an authorization attempt stays valid.
	StateCookieMaxAge = 300
)

type LinkedRolesHandler struct {
	oauthService    services.OAuthService
	defaultMetadata map[string]any
	secureCookies   bool
}

func NewLinkedRolesHandler(oauthService services.OAuthService, defaultMetadata map[string]any, secureCookies bool) *LinkedRolesHandler {
	return &LinkedRolesHandler{
		oauthService:    oauthService,
		defaultMetadata: defaultMetadata,
		secureCookies:   secureCookies,
	}
}

// LinkedRole godoc
// @Summary      Begin the linked-role authorization flow
// @Description  Sets a short-lived state cookie and redirects to the identity provider's consent screen
// @Tags         oauth
// @Success      302
// @Failure      500  {object}  responses.HTTPError
// @Router       /linked-role [get]
func (h *LinkedRolesHandler) LinkedRole(c *gin.Context) {
	url, state, err := h.oauthService.BeginAuthorization(c.Request.Context())
	if err != nil {
		responses.InternalServerError(c, "could not begin authorization")
		return
	}

	c.SetCookie(
		StateCookieName,
		state,
		StateCookieMaxAge,
		"/",
		"",
		h.secureCookies,
		true,
	)

	responses.Redirect(c, url)
}

// Callback godoc
// @Summary      Complete the authorization flow
// @Description  Verifies the echoed state against the cookie, exchanges the code and stores the user's tokens
// @Tags         oauth
// @Produce      json
// @Param        code   query  string  true  "authorization code"
// @Param        state  query  string  true  "echoed state"
// @Success      200  {string}  string
// @Failure      403  {object}  responses.HTTPError "State mismatch"
// @Failure      500  {object}  responses.HTTPError "Provider failure"
// @Router       /discord-oauth-callback [get]
func (h *LinkedRolesHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	providedState := c.Query("state")
	expectedState, _ := c.Cookie(StateCookieName)

	// The attempt is over either way; drop the cookie.
	c.SetCookie(StateCookieName, "", -1, "/", "", h.secureCookies, true)

	_, err := h.oauthService.CompleteAuthorization(c.Request.Context(), code, providedState, expectedState)
	if err != nil {
		if cerror.Is(err, services.ErrStateMismatch) {
			responses.Forbidden(c, "state verification failed")
			return
		}
		logging.FromContext(c.Request.Context()).Error("authorization failed", "error", err)
		responses.InternalServerError(c, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<h1>Connected!</h1><p>You can close this tab and head back to Discord.</p>"))
}

type UpdateMetadataRequest struct {
	UserID   string         `json:"user_id" binding:"required"`
	Metadata map[string]any `json:"metadata"`
}

// UpdateMetadata godoc
// @Summary      Push role-connection metadata for a user
// @Description  Forwards the metadata map (or the configured defaults) to the provider on behalf of the user
// @Tags         oauth
// @Accept       json
// @Param        request  body  UpdateMetadataRequest  true  "user id and optional metadata"
// @Success      204
// @Failure      400  {object}  responses.HTTPError
// @Failure      404  {object}  responses.HTTPError "No stored tokens for user"
// @Failure      500  {object}  responses.HTTPError "Provider failure"
// @Router       /update-metadata [post]
func (h *LinkedRolesHandler) UpdateMetadata(c *gin.Context) {
	var req UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid input")
		return
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = h.defaultMetadata
	}

	err := h.oauthService.SyncMetadata(c.Request.Context(), req.UserID, metadata)
	if err != nil {
		if cerror.Is(err, store.ErrTokenNotFound) {
			responses.NotFound(c, "user has no stored tokens")
			return
		}
		logging.FromContext(c.Request.Context()).Error("metadata push failed", "error", err, "user_id", req.UserID)
		responses.InternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// Metadata godoc
// @Summary      Read a user's current role-connection metadata
// @Tags         oauth
// @Produce      json
// @Param        user_id  query  string  true  "external user id"
// @Success      200  {object}  discord.RoleConnection
// @Failure      400  {object}  responses.HTTPError
// @Failure      404  {object}  responses.HTTPError "No stored tokens for user"
// @Failure      500  {object}  responses.HTTPError "Provider failure"
// @Router       /api/linked-role [get]
func (h *LinkedRolesHandler) Metadata(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		responses.BadRequest(c, "user_id query parameter is required")
		return
	}

	conn, err := h.oauthService.GetMetadata(c.Request.Context(), userID)
	if err != nil {
		if cerror.Is(err, store.ErrTokenNotFound) {
			responses.NotFound(c, "user has no stored tokens")
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	responses.JSONData(c, http.StatusOK, conn)
}
