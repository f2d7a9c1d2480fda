package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"skillur/internal/domain"
	"skillur/internal/middleware"
	"skillur/internal/pkg/logger"
	"skillur/internal/repository"
	"skillur/internal/security"
	"skillur/internal/usecase"
)

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *security.TokenManager
}

// memoryTokens replaces the Redis refresh-token whitelist in tests.
type memoryTokens struct {
	m map[string]string
}

func (s *memoryTokens) SaveRefresh(_ context.Context, userID, refreshToken string) error {
	s.m[refreshToken] = userID
	return nil
}

func (s *memoryTokens) CheckRefresh(_ context.Context, refreshToken string) (string, error) {
	userID, ok := s.m[refreshToken]
	if !ok {
		return "", errors.New("token not found")
	}
	return userID, nil
}

func (s *memoryTokens) DeleteRefresh(_ context.Context, refreshToken string) error {
	delete(s.m, refreshToken)
	return nil
}

func newTestServer(tb testing.TB) *testServer {
	tb.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Subject{},
		&domain.Chapter{},
		&domain.Card{},
		&domain.UserProgress{},
		&domain.Referral{},
		&domain.PremiumPlan{},
	); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}

	log := logger.Nop()
	tokens := security.NewTokenManager("test-access", "test-refresh")

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	subjectRepo := repository.NewSubjectRepository(db, nil)
	chapterRepo := repository.NewChapterRepository(db)
	cardRepo := repository.NewCardRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	planRepo := repository.NewPlanRepository(db)

	referralUC := usecase.NewReferralUseCase(referralRepo, "http://localhost:5173", log)
	tokenStore := &memoryTokens{m: map[string]string{}}
	authUC := usecase.NewAuthUseCase(userRepo, tokenStore, security.NewPasswordHasher(), tokens, referralUC, log)
	contentUC := usecase.NewContentUseCase(subjectRepo, chapterRepo, cardRepo, progressRepo)
	unlockUC := usecase.NewUnlockUseCase(profileRepo, chapterRepo, progressRepo, log)
	adminUC := usecase.NewAdminUseCase(subjectRepo, chapterRepo, cardRepo, profileRepo)
	planUC := usecase.NewPlanUseCase(planRepo, log)
	dashUC := usecase.NewDashboardUseCase(profileRepo, subjectRepo, progressRepo, referralRepo)

	// Unreachable on purpose: the limiter fails open when Redis is down.
	limiterRedis := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})

	router := NewRouter(RouterDeps{
		Auth:        NewAuthHandler(authUC),
		Profile:     NewProfileHandler(profileRepo, referralUC, dashUC),
		Content:     NewContentHandler(contentUC, unlockUC, profileRepo),
		Admin:       NewAdminHandler(adminUC),
		Plans:       NewPlanHandler(planUC),
		AuthUseCase: authUC,
		Profiles:    profileRepo,
		Limiter:     middleware.NewRateLimiter(limiterRedis),
		FrontendURL: "http://localhost:5173",
	})

	return &testServer{db: db, router: router, tokens: tokens}
}

func (s *testServer) seedProfile(tb testing.TB, scs string, coins int, admin bool) *domain.Profile {
	tb.Helper()
	role := domain.RoleStudent
	if admin {
		role = domain.RoleAdmin
	}
	p := &domain.Profile{
		ID:        uuid.New(),
		SCSNumber: scs,
		Role:      role,
		Class:     "7",
		Coins:     coins,
		IsAdmin:   admin,
	}
	if err := s.db.Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func (s *testServer) bearer(tb testing.TB, userID uuid.UUID) string {
	tb.Helper()
	access, _, err := s.tokens.Generate(userID.String())
	if err != nil {
		tb.Fatalf("generate token: %v", err)
	}
	return "Bearer " + access
}

func (s *testServer) do(tb testing.TB, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	tb.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			tb.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(tb testing.TB, w *httptest.ResponseRecorder) map[string]interface{} {
	tb.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		tb.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodGet, "/api/v1/subjects", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/subjects", "Bearer garbage", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"scs_number":   "6000001",
		"password":     "secret123",
		"phone_number": "+4912345678",
		"class":        "7",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s, want 201", w.Code, w.Body.String())
	}
	if id, _ := decode(t, w)["user_id"].(string); id == "" {
		t.Error("response missing user_id")
	}

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"scs_number":   "123456",
		"password":     "secret123",
		"phone_number": "+4912345678",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short scs_number: status = %d, want 400", w.Code)
	}
}

func refreshCookie(tb testing.TB, w *httptest.ResponseRecorder) *http.Cookie {
	tb.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" && c.Value != "" {
			return c
		}
	}
	tb.Fatalf("no refresh_token cookie in response")
	return nil
}

func (s *testServer) doWithCookie(tb testing.TB, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	tb.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestLoginRefreshLogoutFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"scs_number":   "6000050",
		"password":     "secret123",
		"phone_number": "+4912345678",
		"class":        "7",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d body = %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"scs_number": "6000050",
		"password":   "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d body = %s", w.Code, w.Body.String())
	}
	access, _ := decode(t, w)["access_token"].(string)
	if access == "" {
		t.Fatal("login response missing access_token")
	}
	oldCookie := refreshCookie(t, w)

	if w := s.do(t, http.MethodGet, "/api/v1/profile", "Bearer "+access, nil); w.Code != http.StatusOK {
		t.Errorf("profile with login token: status = %d", w.Code)
	}

	w = s.doWithCookie(t, http.MethodPost, "/api/v1/auth/refresh", oldCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: status = %d body = %s", w.Code, w.Body.String())
	}
	newCookie := refreshCookie(t, w)
	if newCookie.Value == oldCookie.Value {
		t.Error("refresh token not rotated")
	}

	if w := s.doWithCookie(t, http.MethodPost, "/api/v1/auth/refresh", oldCookie); w.Code != http.StatusUnauthorized {
		t.Errorf("rotated token reuse: status = %d, want 401", w.Code)
	}

	if w := s.doWithCookie(t, http.MethodPost, "/api/v1/auth/logout", newCookie); w.Code != http.StatusOK {
		t.Errorf("logout: status = %d", w.Code)
	}
	if w := s.doWithCookie(t, http.MethodPost, "/api/v1/auth/refresh", newCookie); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh after logout: status = %d, want 401", w.Code)
	}
}

func TestGetChapterUnknownID(t *testing.T) {
	s := newTestServer(t)
	user := s.seedProfile(t, "6000060", 0, false)

	w := s.do(t, http.MethodGet, "/api/v1/chapters/"+uuid.New().String(), s.bearer(t, user.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown chapter: status = %d, want 404", w.Code)
	}
}

func TestUnlockEndpoint(t *testing.T) {
	s := newTestServer(t)
	user := s.seedProfile(t, "6000010", 50, false)

	subject := &domain.Subject{ID: uuid.New(), Name: "Mathematics", Class: "7"}
	if err := s.db.Create(subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	price := 30
	chapter := &domain.Chapter{ID: uuid.New(), SubjectID: subject.ID, Title: "Algebra", OrderIndex: 1, CoinPrice: &price}
	if err := s.db.Create(chapter).Error; err != nil {
		t.Fatalf("seed chapter: %v", err)
	}

	auth := s.bearer(t, user.ID)
	path := "/api/v1/chapters/" + chapter.ID.String() + "/unlock"

	w := s.do(t, http.MethodPost, path, auth, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unlock: status = %d body = %s, want 200", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["coins"].(float64) != 20 {
		t.Errorf("coins = %v, want 20", body["coins"])
	}

	w = s.do(t, http.MethodPost, path, auth, nil)
	if w.Code != http.StatusOK || decode(t, w)["already_unlocked"] != true {
		t.Errorf("repeat unlock: status = %d body = %s", w.Code, w.Body.String())
	}

	poor := s.seedProfile(t, "6000011", 5, false)
	if w := s.do(t, http.MethodPost, path, s.bearer(t, poor.ID), nil); w.Code != http.StatusPaymentRequired {
		t.Errorf("broke user: status = %d, want 402", w.Code)
	}
}

func TestAdminRoutesGatedByCapability(t *testing.T) {
	s := newTestServer(t)
	student := s.seedProfile(t, "6000020", 0, false)
	admin := s.seedProfile(t, "6000021", 0, true)

	if w := s.do(t, http.MethodGet, "/api/v1/admin/stats", s.bearer(t, student.ID), nil); w.Code != http.StatusForbidden {
		t.Errorf("student on admin route: status = %d, want 403", w.Code)
	}

	w := s.do(t, http.MethodGet, "/api/v1/admin/stats", s.bearer(t, admin.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin stats: status = %d body = %s, want 200", w.Code, w.Body.String())
	}
	if decode(t, w)["students"].(float64) != 1 {
		t.Errorf("students = %v, want 1 (admins not counted)", decode(t, w)["students"])
	}
}

func TestAdminCreatesContent(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedProfile(t, "6000030", 0, true)
	auth := s.bearer(t, admin.ID)

	w := s.do(t, http.MethodPost, "/api/v1/admin/subjects", auth, gin.H{
		"name":  "Biology",
		"class": "7",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create subject: status = %d body = %s", w.Code, w.Body.String())
	}
	subjectID := decode(t, w)["id"].(string)

	w = s.do(t, http.MethodPost, "/api/v1/admin/chapters", auth, gin.H{
		"subject_id": subjectID,
		"title":      "Cells",
		"coin_price": 20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create chapter: status = %d body = %s", w.Code, w.Body.String())
	}
	if decode(t, w)["order_index"].(float64) != 1 {
		t.Errorf("order_index = %v, want computed 1", decode(t, w)["order_index"])
	}

	w = s.do(t, http.MethodPost, "/api/v1/admin/subjects", auth, gin.H{
		"name":  "Astrology",
		"class": "11",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid class: status = %d, want 400", w.Code)
	}
}

func TestPlanEndpoints(t *testing.T) {
	s := newTestServer(t)
	user := s.seedProfile(t, "6000040", 0, false)
	auth := s.bearer(t, user.ID)

	planRepo := repository.NewPlanRepository(s.db)
	if err := planRepo.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}

	w := s.do(t, http.MethodGet, "/api/v1/plans", auth, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list plans: status = %d", w.Code)
	}
	plans := decode(t, w)["plans"].([]interface{})
	if len(plans) != 3 {
		t.Fatalf("plans = %d, want 3", len(plans))
	}

	planID := plans[0].(map[string]interface{})["id"].(string)
	w = s.do(t, http.MethodPost, "/api/v1/plans/"+planID+"/subscribe", auth, nil)
	if w.Code != http.StatusAccepted {
		t.Errorf("subscribe: status = %d body = %s, want 202", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/v1/plans/"+uuid.New().String()+"/subscribe", auth, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown plan: status = %d, want 404", w.Code)
	}
}
