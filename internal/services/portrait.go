package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/repos"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

// Bioguide ids are one letter followed by six digits. Anything else is
// rejected before it can touch the filesystem.
var bioguideIDPattern = regexp.MustCompile(`^[A-Z][0-9]{6}$`)

var ErrPortraitNotFound = errors.New("portrait not found")

// Party colors for generated placeholder cards.
var partyColors = map[string]color.NRGBA{
	"Democrat":    {R: 0x23, G: 0x5A, B: 0xB5, A: 0xFF},
	"Republican":  {R: 0xB5, G: 0x2B, B: 0x23, A: 0xFF},
	"Independent": {R: 0x5A, G: 0x5A, B: 0x5A, A: 0xFF},
}

type PortraitService interface {
	Resolve(ctx context.Context, bioguideID string) (string, error)
}

type portraitService struct {
	db             *gorm.DB
	log            *logger.Logger
	legislatorRepo repos.LegislatorRepo
	portraitsDir   string
	fontFace       font.Face
}

func NewPortraitService(db *gorm.DB, log *logger.Logger, legislatorRepo repos.LegislatorRepo) (PortraitService, error) {
	serviceLog := log.With("service", "PortraitService")

	portraitsDir := utils.GetEnv("PORTRAITS_DIR", "./portraits", log)
	if err := os.MkdirAll(portraitsDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create portraits dir: %w", err)
	}

	// Placeholder generation is optional; without a font we just serve
	// what is on disk and 404 the rest.
	var face font.Face
	fontPath := strings.TrimSpace(os.Getenv("PORTRAIT_FONT"))
	if fontPath != "" {
		loaded, err := loadFontFace(fontPath, 120)
		if err != nil {
			serviceLog.Warn("Could not load portrait font, placeholders disabled", "font", fontPath, "error", err)
		} else {
			face = loaded
		}
	}

	return &portraitService{
		db:             db,
		log:            serviceLog,
		legislatorRepo: legislatorRepo,
		portraitsDir:   portraitsDir,
		fontFace:       face,
	}, nil
}

// Resolve returns the on-disk path for a legislator portrait, generating
// and caching a placeholder card when no real asset exists.
func (ps *portraitService) Resolve(ctx context.Context, bioguideID string) (string, error) {
	if !bioguideIDPattern.MatchString(bioguideID) {
		return "", ErrPortraitNotFound
	}

	path := filepath.Join(ps.portraitsDir, bioguideID+".jpg")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if ps.fontFace == nil {
		return "", ErrPortraitNotFound
	}

	legislator, err := ps.legislatorRepo.GetByBioguideID(ctx, nil, bioguideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPortraitNotFound
		}
		return "", err
	}

	buf, err := ps.generatePlaceholder(legislator.FirstName, legislator.LastName, legislator.Party)
	if err != nil {
		return "", fmt.Errorf("generate placeholder portrait: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("cache placeholder portrait: %w", err)
	}
	ps.log.Info("Generated placeholder portrait", "bioguide_id", bioguideID)
	return path, nil
}

func (ps *portraitService) generatePlaceholder(firstName, lastName, party string) (bytes.Buffer, error) {
	const width, height = 450, 550

	dc := gg.NewContext(width, height)

	base, ok := partyColors[party]
	if !ok {
		base = partyColors["Independent"]
	}
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	initials := computeInitials(firstName, lastName)

	dc.SetFontFace(ps.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(width)/2, float64(height)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2), cy+(th/2))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: 90}); err != nil {
		return buf, fmt.Errorf("failed to encode JPG: %w", err)
	}
	return buf, nil
}

func computeInitials(first, last string) string {
	fInit := "?"
	if len(first) > 0 {
		fInit = strings.ToUpper(first[:1])
	}
	lInit := "?"
	if len(last) > 0 {
		lInit = strings.ToUpper(last[:1])
	}
	return fInit + lInit
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
