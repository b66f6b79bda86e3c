package service

import (
	"context"
	"fmt"
	"log"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/passgen"
	"github.com/paige-inner-circle/legacy-backend/internal/pdfgen"
	"github.com/paige-inner-circle/legacy-backend/internal/qrcode"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
)

// Step statuses in a GenerationReport.
const (
	StepOk       = "ok"
	StepDegraded = "degraded"
	StepFailed   = "failed"
)

// StepResult records the outcome of one asset generation step.
type StepResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// GenerationReport records what the asset pipeline managed to produce for
// a pass. Asset failures never abort an RSVP; the sweep retries later.
type GenerationReport struct {
	QRCode StepResult `json:"qr_code"`
	Images StepResult `json:"images"`
	PDF    StepResult `json:"pdf"`
}

// Degraded reports whether any step fell short.
func (r *GenerationReport) Degraded() bool {
	return r.QRCode.Status != StepOk || r.Images.Status != StepOk || r.PDF.Status != StepOk
}

// AssetService drives the QR, card image and PDF pipeline for a pass.
type AssetService struct {
	cfg       *config.Config
	passRepo  repository.LegacyPassRepository
	generator *passgen.Generator
}

func NewAssetService(cfg *config.Config, passRepo repository.LegacyPassRepository, generator *passgen.Generator) *AssetService {
	return &AssetService{cfg: cfg, passRepo: passRepo, generator: generator}
}

const eventDateLayout = "January 2, 2006"

// GenerateAll produces every asset for a pass and persists the resulting
// paths. Each step degrades independently so one bad render doesn't cost
// the rest.
func (s *AssetService) GenerateAll(ctx context.Context, pass *repository.LegacyPass, member *repository.Member, event *repository.Event) *GenerationReport {
	report := &GenerationReport{
		QRCode: StepResult{Status: StepOk},
		Images: StepResult{Status: StepOk},
		PDF:    StepResult{Status: StepOk},
	}
	eventDate := event.EventDate.Format(eventDateLayout)

	qrResult, err := qrcode.SaveQRCode(s.cfg.StaticDir, pass.PassNumber, member.FullName,
		event.ID, pass.Token, eventDate)
	if err != nil {
		log.Printf("[Assets] ⚠️ QR generation failed for %s: %v", pass.PassNumber, err)
		report.QRCode = StepResult{Status: StepFailed, Error: err.Error()}
	} else {
		pass.QRCodeData = &qrResult.Data
		pass.QRImagePath = &qrResult.ImagePath
	}

	qrPath := ""
	if pass.QRImagePath != nil {
		qrPath = *pass.QRImagePath
	}
	assets, err := s.generator.SaveAssets(member.FullName, pass.PassNumber, member.MembershipTier,
		event.Title, eventDate, event.VenueName, pass.Token, qrPath)
	if err != nil {
		log.Printf("[Assets] ⚠️ Card rendering failed for %s: %v", pass.PassNumber, err)
		report.Images = StepResult{Status: StepFailed, Error: err.Error()}
	} else {
		pass.FrontImagePath = &assets.FrontPath
		pass.BackImagePath = &assets.BackPath
		pass.BlurredFront = &assets.BlurredFrontPath
		pass.BlurredBack = &assets.BlurredBackPath
		if report.QRCode.Status == StepFailed {
			// Card back rendered without its QR code
			report.Images = StepResult{Status: StepDegraded, Error: "rendered without QR code"}
		}
	}

	if pass.FrontImagePath != nil && pass.BackImagePath != nil {
		pdfPath, err := pdfgen.GeneratePassPDF(s.cfg.StaticDir, *pass.FrontImagePath,
			*pass.BackImagePath, pass.PassNumber, member.FullName)
		if err != nil {
			log.Printf("[Assets] ⚠️ PDF generation failed for %s: %v", pass.PassNumber, err)
			report.PDF = StepResult{Status: StepFailed, Error: err.Error()}
		} else {
			pass.PDFPath = &pdfPath
		}
	} else {
		report.PDF = StepResult{Status: StepFailed, Error: "card images unavailable"}
	}

	if err := s.passRepo.UpdateAssets(ctx, pass); err != nil {
		log.Printf("[Assets] ❌ Failed to persist asset paths for %s: %v", pass.PassNumber, err)
	}
	return report
}

// RegeneratePDF re-renders just the PDF, for the on-demand download path.
func (s *AssetService) RegeneratePDF(ctx context.Context, pass *repository.LegacyPass, memberName string) (string, error) {
	if pass.FrontImagePath == nil || pass.BackImagePath == nil {
		return "", fmt.Errorf("pass %s has no card images to bind", pass.PassNumber)
	}
	pdfPath, err := pdfgen.GeneratePassPDF(s.cfg.StaticDir, *pass.FrontImagePath,
		*pass.BackImagePath, pass.PassNumber, memberName)
	if err != nil {
		return "", err
	}
	pass.PDFPath = &pdfPath
	if err := s.passRepo.UpdateAssets(ctx, pass); err != nil {
		return "", err
	}
	return pdfPath, nil
}

// VerificationQR renders the door-staff verification code for a pass.
func (s *AssetService) VerificationQR(token string) (string, error) {
	return qrcode.VerificationQR(s.cfg.StaticDir, token, s.cfg.FrontendURL+"/verify/"+token)
}

// WalletData builds the wallet payload for a pass.
func (s *AssetService) WalletData(pass *repository.LegacyPass, memberName string, event *repository.Event) map[string]any {
	qrData := ""
	if pass.QRCodeData != nil {
		qrData = *pass.QRCodeData
	}
	return pdfgen.WalletPassData(pass.PassNumber, memberName, event.Title,
		event.EventDate.Format(eventDateLayout), event.VenueName, qrData)
}
