package cards

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	_ "image/jpeg"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// ErrAvatarFetch marks a missing or unreachable avatar image.
var ErrAvatarFetch = errors.New("could not fetch avatar")

const (
	cardWidth  = 800
	cardHeight = 350

	avatarSize = 160
	avatarX    = 100
	avatarY    = 95
)

type Options struct {
	// Template paths; a blank path renders on a flat dark background.
	WelcomeTemplate string
	RankTemplate    string
	// FontPath points at a TTF face. Blank falls back to a builtin bitmap
	// face so the renderer works without bundled assets.
	FontPath string
}

type WelcomeCard struct {
	Username    string
	DisplayName string
	AvatarURL   string
}

type RankCard struct {
	Username  string
	AvatarURL string
	Level     int
	XP        int
	TotalXP   int
	Rank      int
}

type Renderer struct {
	opts Options
	http *http.Client
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		opts: opts,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Welcome composites the avatar and names onto the welcome template and
// returns the encoded PNG.
func (r *Renderer) Welcome(ctx context.Context, card WelcomeCard) ([]byte, error) {
	avatar, err := r.fetchAvatar(ctx, card.AvatarURL)
	if err != nil {
		return nil, err
	}

	dc, err := r.newCanvas(r.opts.WelcomeTemplate)
	if err != nil {
		return nil, err
	}

	dc.DrawImage(circleAvatar(avatar), avatarX, avatarY)

	if err := r.setFont(dc, 50); err != nil {
		return nil, err
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawString(truncate(card.DisplayName, 13, 10), 320, 170)

	if err := r.setFont(dc, 30); err != nil {
		return nil, err
	}
	dc.SetHexColor("#dddddd")
	dc.DrawString(truncate(card.Username, 20, 17), 320, 210)

	return encodePNG(dc.Image())
}

// Rank renders the rank-card variant: avatar, truncated name, level/rank
// labels and an XP progress bar.
func (r *Renderer) Rank(ctx context.Context, card RankCard) ([]byte, error) {
	avatar, err := r.fetchAvatar(ctx, card.AvatarURL)
	if err != nil {
		return nil, err
	}

	dc, err := r.newCanvas(r.opts.RankTemplate)
	if err != nil {
		return nil, err
	}

	dc.DrawImage(circleAvatar(avatar), avatarX, avatarY)

	if err := r.setFont(dc, 40); err != nil {
		return nil, err
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawString(truncate(card.Username, 12, 12), 320, 150)

	if err := r.setFont(dc, 25); err != nil {
		return nil, err
	}
	dc.SetHexColor("#dddddd")
	dc.DrawString(fmt.Sprintf("LEVEL %d", card.Level), 320, 190)
	dc.DrawStringAnchored(fmt.Sprintf("RANK #%d", card.Rank), cardWidth-60, 190, 1, 0)

	drawXPBar(dc, card.XP, card.TotalXP)

	return encodePNG(dc.Image())
}

func (r *Renderer) fetchAvatar(ctx context.Context, avatarURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", avatarURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvatarFetch, err)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvatarFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrAvatarFetch, resp.StatusCode)
	}

	src, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvatarFetch, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

func (r *Renderer) newCanvas(templatePath string) (*gg.Context, error) {
	if templatePath == "" {
		dc := gg.NewContext(cardWidth, cardHeight)
		dc.SetHexColor("#23272a")
		dc.Clear()
		return dc, nil
	}

	template, err := gg.LoadImage(templatePath)
	if err != nil {
		return nil, fmt.Errorf("load card template: %w", err)
	}
	return gg.NewContextForImage(template), nil
}

func (r *Renderer) setFont(dc *gg.Context, points float64) error {
	if r.opts.FontPath == "" {
		dc.SetFontFace(basicfont.Face7x13)
		return nil
	}
	if err := dc.LoadFontFace(r.opts.FontPath, points); err != nil {
		return fmt.Errorf("load font face: %w", err)
	}
	return nil
}

// circleAvatar clips the scaled avatar to a circle.
func circleAvatar(avatar image.Image) image.Image {
	dc := gg.NewContext(avatarSize, avatarSize)
	dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize/2)
	dc.Clip()
	dc.DrawImage(avatar, 0, 0)
	return dc.Image()
}

func drawXPBar(dc *gg.Context, xp, totalXP int) {
	const (
		barX      = 320
		barY      = 220
		barWidth  = 420
		barHeight = 30
	)

	dc.SetHexColor("#4f545c")
	dc.DrawRoundedRectangle(barX, barY, barWidth, barHeight, barHeight/2)
	dc.Fill()

	progress := 0.0
	if totalXP > 0 {
		progress = float64(xp) / float64(totalXP)
	}
	if progress > 1 {
		progress = 1
	}
	if progress > 0 {
		dc.SetHexColor("#5865f2")
		dc.DrawRoundedRectangle(barX, barY, barWidth*progress, barHeight, barHeight/2)
		dc.Fill()
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(fmt.Sprintf("%d / %d XP", xp, totalXP), barX+barWidth/2, barY+barHeight+20, 0.5, 0.5)
}

// truncate cuts s to keep characters plus an ellipsis when it exceeds max
// characters. Counts runes, not bytes, matching how names are displayed.
func truncate(s string, max, keep int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:keep]) + "..."
}

func encodePNG(im image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, im); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}
