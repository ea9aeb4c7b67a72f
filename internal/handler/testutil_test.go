package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/damoang/angple-comms/internal/domain"
	"github.com/damoang/angple-comms/internal/repository"
	"github.com/damoang/angple-comms/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testStaffLevel = 10

// testEnv wires real services over an in-memory SQLite database
type testEnv struct {
	db         *gorm.DB
	router     *gin.Engine
	muteRepo   repository.MuteRepository
	ignoreRepo repository.IgnoreRepository
	allowRepo  repository.AllowListRepository
}

// newTestEnv builds a router with all screening and preference routes,
// authenticated as the given user via a stub middleware
func newTestEnv(t *testing.T, authedUserID string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Member{},
		&domain.MemberMute{},
		&domain.MemberIgnore{},
		&domain.AllowedPMUser{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	memberRepo := repository.NewMemberRepository(db)
	muteRepo := repository.NewMuteRepository(db)
	ignoreRepo := repository.NewIgnoreRepository(db)
	allowRepo := repository.NewAllowListRepository(db)

	screenerSvc := service.NewScreenerService(memberRepo, muteRepo, ignoreRepo, allowRepo, testStaffLevel)
	prefSvc := service.NewPreferenceService(memberRepo, muteRepo, ignoreRepo, allowRepo, nil)

	screenerHandler := NewScreenerHandler(screenerSvc, 100)
	prefHandler := NewPreferenceHandler(prefSvc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if authedUserID != "" {
			c.Set("userID", authedUserID)
		}
		c.Next()
	})

	api := router.Group("/api/v1")
	api.POST("/screen", screenerHandler.Screen)
	api.POST("/screen/check", screenerHandler.Check)
	api.POST("/members/:user_id/mute", prefHandler.MuteMember)
	api.DELETE("/members/:user_id/mute", prefHandler.UnmuteMember)
	api.POST("/members/:user_id/ignore", prefHandler.IgnoreMember)
	api.GET("/members/me/mutes", prefHandler.ListMutes)
	api.GET("/members/me/pm-options", prefHandler.GetPMOptions)
	api.PUT("/members/me/pm-options", prefHandler.UpdatePMOptions)

	return &testEnv{
		db:         db,
		router:     router,
		muteRepo:   muteRepo,
		ignoreRepo: ignoreRepo,
		allowRepo:  allowRepo,
	}
}

// seedMember inserts a member row
func (e *testEnv) seedMember(t *testing.T, userID string, level int) {
	t.Helper()
	member := &domain.Member{
		UserID:               userID,
		Nickname:             userID,
		Level:                level,
		AllowPrivateMessages: true,
	}
	if err := e.db.Create(member).Error; err != nil {
		t.Fatalf("failed to seed member %s: %v", userID, err)
	}
}

// mute records a mute directly through the repository
func (e *testEnv) mute(t *testing.T, muterID, mutedID string) {
	t.Helper()
	if _, err := e.muteRepo.Create(muterID, mutedID); err != nil {
		t.Fatalf("failed to seed mute: %v", err)
	}
}

// ignore records an ignore directly through the repository
func (e *testEnv) ignore(t *testing.T, ignorerID, ignoredID string, expiresAt *time.Time) {
	t.Helper()
	if _, err := e.ignoreRepo.Create(ignorerID, ignoredID, expiresAt); err != nil {
		t.Fatalf("failed to seed ignore: %v", err)
	}
}

// doJSON performs a request with a JSON body and returns the recorder
func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the "data" field of the response envelope
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("failed to decode response data: %v", err)
	}
}
