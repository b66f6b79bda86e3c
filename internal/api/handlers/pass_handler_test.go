package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/passgen"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// stubTokenService hands back one prepared pass for any token.
type stubTokenService struct {
	pass *repository.LegacyPass
}

func (s *stubTokenService) GenerateToken() string { return s.pass.Token }

func (s *stubTokenService) ValidateToken(context.Context, string) (*repository.LegacyPass, error) {
	return s.pass, nil
}

func (s *stubTokenService) GetPassByToken(context.Context, string, bool) (*repository.LegacyPass, error) {
	return s.pass, nil
}

func (s *stubTokenService) PaymentStatus(context.Context, string) (bool, *repository.Payment, error) {
	return true, nil, nil
}

func (s *stubTokenService) AccessInfo(context.Context, string) (*service.TokenAccessInfo, error) {
	return &service.TokenAccessInfo{Token: s.pass.Token, PaymentVerified: true, CanAccessFullPass: true}, nil
}

func (s *stubTokenService) Deactivate(context.Context, string) error { return nil }
func (s *stubTokenService) Reactivate(context.Context, string) error { return nil }

type stubMemberService struct {
	member *repository.Member
}

func (s *stubMemberService) Get(context.Context, string) (*repository.Member, error) {
	return s.member, nil
}

func (s *stubMemberService) List(context.Context, bool, int, int) ([]*repository.Member, error) {
	return nil, nil
}

func (s *stubMemberService) Create(context.Context, service.CreateMemberRequest) (*repository.Member, error) {
	return nil, nil
}

func (s *stubMemberService) Update(context.Context, *repository.Member) error { return nil }
func (s *stubMemberService) SetActive(context.Context, string, bool) error    { return nil }
func (s *stubMemberService) Delete(context.Context, string) error             { return nil }

// stubPassRepo only needs UpdateAssets for the regeneration path.
type stubPassRepo struct {
	updated *repository.LegacyPass
}

func (r *stubPassRepo) Create(context.Context, *repository.LegacyPass) error { return nil }

func (r *stubPassRepo) FindByID(context.Context, string) (*repository.LegacyPass, error) {
	return nil, nil
}

func (r *stubPassRepo) FindByToken(context.Context, string) (*repository.LegacyPass, error) {
	return nil, nil
}

func (r *stubPassRepo) FindByMemberAndEvent(context.Context, string, string) (*repository.LegacyPass, error) {
	return nil, nil
}

func (r *stubPassRepo) FindByMember(context.Context, string) ([]*repository.LegacyPass, error) {
	return nil, nil
}

func (r *stubPassRepo) FindByEvent(context.Context, string) ([]*repository.LegacyPass, error) {
	return nil, nil
}

func (r *stubPassRepo) FindMissingAssets(context.Context) ([]*repository.LegacyPass, error) {
	return nil, nil
}

func (r *stubPassRepo) UpdateAssets(_ context.Context, pass *repository.LegacyPass) error {
	r.updated = pass
	return nil
}

func (r *stubPassRepo) SetActive(context.Context, string, bool) error { return nil }
func (r *stubPassRepo) NextPassNumber(context.Context) (int64, error) { return 1, nil }

func downloadContext(t *testing.T, token string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pass/full/"+token+"/pdf", nil)
	c.Params = gin.Params{{Key: "token", Value: token}}
	return c, w
}

func TestDownloadPDFRegeneratesMissingDocument(t *testing.T) {
	cfg := &config.Config{StaticDir: t.TempDir(), FontDir: t.TempDir()}
	gen := passgen.NewGenerator(cfg.StaticDir, cfg.FontDir)

	front := filepath.Join(cfg.StaticDir, "legacy_passes", "INNER-CIRCLE-009_front.png")
	back := filepath.Join(cfg.StaticDir, "legacy_passes", "INNER-CIRCLE-009_back.png")
	require.NoError(t, gen.CreateFront("Elena Vasquez", "INNER-CIRCLE-#009", "vip", front))
	require.NoError(t, gen.CreateBack("INNER-CIRCLE-#009", "The Inner Circle Gala", "December 12, 2026",
		"The Grand Meridian", "tok-9", filepath.Join(cfg.StaticDir, "missing.png"), back))

	// Card images exist but the PDF was never rendered.
	pass := &repository.LegacyPass{
		ID:             "pass-9",
		MemberID:       "member-9",
		PassNumber:     "INNER-CIRCLE-#009",
		Token:          "tok-9",
		FrontImagePath: &front,
		BackImagePath:  &back,
	}
	repo := &stubPassRepo{}
	h := &PassHandler{
		tokenService:  &stubTokenService{pass: pass},
		memberService: &stubMemberService{member: &repository.Member{ID: "member-9", FullName: "Elena Vasquez"}},
		assetService:  service.NewAssetService(cfg, repo, gen),
	}

	c, w := downloadContext(t, pass.Token)
	h.DownloadPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "legacy-pass-INNER-CIRCLE-#009.pdf")
	require.NotNil(t, pass.PDFPath)
	assert.FileExists(t, *pass.PDFPath)
	require.NotNil(t, repo.updated)
	assert.Equal(t, pass.PDFPath, repo.updated.PDFPath)
}

func TestDownloadPDFWithoutCardImages(t *testing.T) {
	cfg := &config.Config{StaticDir: t.TempDir(), FontDir: t.TempDir()}

	pass := &repository.LegacyPass{
		ID:         "pass-10",
		MemberID:   "member-10",
		PassNumber: "INNER-CIRCLE-#010",
		Token:      "tok-10",
	}
	h := &PassHandler{
		tokenService:  &stubTokenService{pass: pass},
		memberService: &stubMemberService{member: &repository.Member{ID: "member-10", FullName: "James Okafor"}},
		assetService:  service.NewAssetService(cfg, &stubPassRepo{}, passgen.NewGenerator(cfg.StaticDir, cfg.FontDir)),
	}

	c, w := downloadContext(t, pass.Token)
	h.DownloadPDF(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, pass.PDFPath)
}
