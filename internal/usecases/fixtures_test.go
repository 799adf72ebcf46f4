package usecases_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"strmly.backend/internal/config"
	"strmly.backend/internal/domain/entities"
	domainRepos "strmly.backend/internal/domain/repositories"
	"strmly.backend/internal/infrastructure/models"
	"strmly.backend/internal/infrastructure/notifications"
	"strmly.backend/internal/infrastructure/repositories"
	"strmly.backend/internal/usecases"
)

// recordingSink captures published events for assertions
type recordingSink struct {
	mu     sync.Mutex
	events []notifications.Event
	err    error
}

func (s *recordingSink) Publish(ctx context.Context, event notifications.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Events() []notifications.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notifications.Event, len(s.events))
	copy(out, s.events)
	return out
}

func testWalletConfig() config.WalletConfig {
	return config.WalletConfig{
		GiftMinAmount:         1,
		GiftMaxAmount:         1000,
		PlatformFeePercentage: 30,
		DefaultVideoPrice:     99,
		CreatorPassPrice:      199,
		CreatorPassValidity:   30 * 24 * time.Hour,
	}
}

// fixture wires the full usecase stack over an in-memory datastore
type fixture struct {
	db           *gorm.DB
	wallets      *repositories.WalletRepository
	ledger       *repositories.LedgerRepository
	transfers    *repositories.TransferRepository
	grants       *repositories.AccessGrantRepository
	videos       *repositories.VideoRepository
	series       *repositories.SeriesRepository
	comments     *repositories.CommentRepository
	users        *repositories.UserRepository
	uow          domainRepos.UnitOfWork
	sink         *recordingSink
	cfg          config.WalletConfig
	transferUC   *usecases.TransferUsecase
	accessUC     *usecases.AccessUsecase
	walletUC     *usecases.WalletUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	createTables(t, db)

	f := &fixture{
		db:        db,
		wallets:   repositories.NewWalletRepository(db),
		ledger:    repositories.NewLedgerRepository(db),
		transfers: repositories.NewTransferRepository(db),
		grants:    repositories.NewAccessGrantRepository(db),
		videos:    repositories.NewVideoRepository(db),
		series:    repositories.NewSeriesRepository(db),
		comments:  repositories.NewCommentRepository(db),
		users:     repositories.NewUserRepository(db),
		uow:       repositories.NewUnitOfWork(db),
		sink:      &recordingSink{},
		cfg:       testWalletConfig(),
	}
	f.transferUC = usecases.NewTransferUsecase(
		f.wallets, f.ledger, f.transfers, f.grants,
		f.videos, f.series, f.comments, f.users,
		f.uow, f.sink, f.cfg,
	)
	f.accessUC = usecases.NewAccessUsecase(f.grants, f.videos, f.series, f.cfg)
	f.walletUC = usecases.NewWalletUsecase(f.wallets, f.ledger, f.transfers)
	return f
}

func createTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	stmts := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			profile_photo TEXT,
			is_creator BOOLEAN,
			fcm_token TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		);`,
		`CREATE TABLE wallets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			balance INTEGER NOT NULL DEFAULT 0,
			total_spent INTEGER NOT NULL DEFAULT 0,
			total_received INTEGER NOT NULL DEFAULT 0,
			currency TEXT NOT NULL,
			status TEXT NOT NULL,
			last_transaction_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE wallet_transactions (
			id TEXT PRIMARY KEY,
			wallet_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			direction TEXT NOT NULL,
			category TEXT NOT NULL,
			amount INTEGER NOT NULL,
			currency TEXT NOT NULL,
			description TEXT,
			balance_before INTEGER NOT NULL,
			balance_after INTEGER NOT NULL,
			content_id TEXT,
			content_type TEXT,
			transfer_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME
		);`,
		`CREATE TABLE wallet_transfers (
			id TEXT PRIMARY KEY,
			sender_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			sender_wallet_id TEXT NOT NULL,
			receiver_wallet_id TEXT NOT NULL,
			total_amount INTEGER NOT NULL,
			creator_amount INTEGER NOT NULL,
			platform_amount INTEGER NOT NULL,
			currency TEXT NOT NULL,
			transfer_type TEXT NOT NULL,
			content_id TEXT,
			content_type TEXT,
			description TEXT,
			sender_balance_before INTEGER NOT NULL,
			sender_balance_after INTEGER NOT NULL,
			receiver_balance_before INTEGER NOT NULL,
			receiver_balance_after INTEGER NOT NULL,
			platform_fee_percentage INTEGER NOT NULL,
			creator_share_percentage INTEGER NOT NULL,
			status TEXT NOT NULL,
			idempotency_key TEXT,
			transfer_note TEXT,
			created_at DATETIME,
			UNIQUE (sender_id, idempotency_key)
		);`,
		`CREATE TABLE user_access (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			content_id TEXT NOT NULL,
			content_type TEXT NOT NULL,
			access_type TEXT NOT NULL,
			payment_id TEXT,
			payment_amount INTEGER NOT NULL DEFAULT 0,
			granted_at DATETIME NOT NULL,
			expires_at DATETIME,
			UNIQUE (user_id, content_id, content_type)
		);`,
		`CREATE TABLE videos (
			id TEXT PRIMARY KEY,
			created_by TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			price INTEGER NOT NULL DEFAULT 0,
			is_monetized BOOLEAN,
			visibility TEXT NOT NULL,
			hidden_reason TEXT,
			series_id TEXT,
			gifts INTEGER NOT NULL DEFAULT 0,
			views INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE series (
			id TEXT PRIMARY KEY,
			created_by TEXT NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			price INTEGER NOT NULL DEFAULT 0,
			total_episodes INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE comments (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			content TEXT NOT NULL,
			is_monetized BOOLEAN,
			parent_comment_id TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error, "exec failed: %s", stmt)
	}
}

func (f *fixture) seedUser(t *testing.T, username string, isCreator bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	m := &models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         entities.RoleUser,
		IsCreator:    isCreator,
	}
	require.NoError(t, f.db.Create(m).Error)
	return id
}

func (f *fixture) seedWallet(t *testing.T, userID uuid.UUID, balance int64) *entities.Wallet {
	t.Helper()
	w := &entities.Wallet{
		ID:       uuid.New(),
		UserID:   userID,
		Balance:  balance,
		Currency: entities.CurrencyINR,
		Status:   entities.WalletStatusActive,
	}
	require.NoError(t, f.wallets.Create(context.Background(), w))
	return w
}

func (f *fixture) seedVideo(t *testing.T, creatorID uuid.UUID, videoType string, price int64, monetized bool) *models.Video {
	t.Helper()
	m := &models.Video{
		ID:          uuid.New(),
		CreatedBy:   creatorID,
		Title:       "Test Video",
		Type:        videoType,
		Price:       price,
		IsMonetized: monetized,
		Visibility:  entities.VisibilityPublic,
	}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

func (f *fixture) seedSeries(t *testing.T, creatorID uuid.UUID, seriesType string, price int64) *models.Series {
	t.Helper()
	m := &models.Series{
		ID:            uuid.New(),
		CreatedBy:     creatorID,
		Title:         "Test Series",
		Type:          seriesType,
		Price:         price,
		TotalEpisodes: 5,
	}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

func (f *fixture) seedComment(t *testing.T, videoID, authorID uuid.UUID, monetized bool, parentID *uuid.UUID) *models.Comment {
	t.Helper()
	m := &models.Comment{
		ID:              uuid.New(),
		VideoID:         videoID,
		UserID:          authorID,
		Content:         "great video",
		IsMonetized:     monetized,
		ParentCommentID: parentID,
	}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

// countRows is a small assertion helper over raw tables
func (f *fixture) countRows(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}
