package cards

import (
	cerror "errors"
	"net/http"
	"strconv"

	"github.com/Richard0070/api-denzel/responses"
	"github.com/gin-gonic/gin"
)

type CardsHandler struct {
	renderer *Renderer
}

func NewCardsHandler(renderer *Renderer) *CardsHandler {
	return &CardsHandler{
		renderer: renderer,
	}
}

// Welcome godoc
// @Summary      Render a welcome card
// @Description  Composites the user's avatar and names onto the welcome template
// @Tags         cards
// @Produce      png
// @Param        username     query  string  true  "account username"
// @Param        displayname  query  string  true  "display name"
// @Param        avatar       query  string  true  "avatar image URL"
// @Success      200  {file}  binary
// @Failure      400  {object}  responses.HTTPError
// @Failure      502  {object}  responses.HTTPError "Avatar unreachable"
// @Router       /welcome [get]
func (h *CardsHandler) Welcome(c *gin.Context) {
	card := WelcomeCard{
		Username:    c.Query("username"),
		DisplayName: c.Query("displayname"),
		AvatarURL:   c.Query("avatar"),
	}
	switch {
	case card.Username == "":
		responses.BadRequest(c, "username query parameter is required")
		return
	case card.DisplayName == "":
		responses.BadRequest(c, "displayname query parameter is required")
		return
	case card.AvatarURL == "":
		responses.BadRequest(c, "avatar query parameter is required")
		return
	}

	img, err := h.renderer.Welcome(c.Request.Context(), card)
	if err != nil {
		if cerror.Is(err, ErrAvatarFetch) {
			responses.BadGateway(c, err.Error())
			return
		}
		responses.InternalServerError(c, "could not render card")
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

// Rank godoc
// @Summary      Render a rank card
// @Description  Composites the user's avatar, level, rank and XP progress onto the rank template
// @Tags         cards
// @Produce      png
// @Param        username  query  string  true  "account username"
// @Param        avatar    query  string  true  "avatar image URL"
// @Param        level     query  int     true  "current level"
// @Param        xp        query  int     true  "xp into the current level"
// @Param        total_xp  query  int     true  "xp needed for the next level"
// @Param        rank      query  int     true  "leaderboard position"
// @Success      200  {file}  binary
// @Failure      400  {object}  responses.HTTPError
// @Failure      502  {object}  responses.HTTPError "Avatar unreachable"
// @Router       /rank [get]
func (h *CardsHandler) Rank(c *gin.Context) {
	card := RankCard{
		Username:  c.Query("username"),
		AvatarURL: c.Query("avatar"),
	}
	switch {
	case card.Username == "":
		responses.BadRequest(c, "username query parameter is required")
		return
	case card.AvatarURL == "":
		responses.BadRequest(c, "avatar query parameter is required")
		return
	}

	var err error
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"level", &card.Level},
		{"xp", &card.XP},
		{"total_xp", &card.TotalXP},
		{"rank", &card.Rank},
	} {
		raw := c.Query(field.name)
		if raw == "" {
			responses.BadRequest(c, field.name+" query parameter is required")
			return
		}
		if *field.dst, err = strconv.Atoi(raw); err != nil {
			responses.BadRequest(c, field.name+" must be an integer")
			return
		}
	}

	img, err := h.renderer.Rank(c.Request.Context(), card)
	if err != nil {
		if cerror.Is(err, ErrAvatarFetch) {
			responses.BadGateway(c, err.Error())
			return
		}
		responses.InternalServerError(c, "could not render card")
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}
