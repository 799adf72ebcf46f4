package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	domainRepos "strmly.backend/internal/domain/repositories"
	"strmly.backend/internal/infrastructure/repositories"
	"strmly.backend/internal/usecases"
)

func requireAppErrorCode(t *testing.T, err error, code string) *domainerrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*domainerrors.AppError)
	require.True(t, ok, "expected *AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestGiftVideo_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 500)
	f.seedWallet(t, creatorID, 0)

	res, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{
		VideoID: video.ID.String(),
		Amount:  100,
	}, "")
	require.NoError(t, err)

	// gifts carry no platform fee
	require.Equal(t, int64(100), res.TotalAmount)
	require.Equal(t, int64(100), res.CreatorAmount)
	require.Equal(t, int64(0), res.PlatformAmount)
	require.Equal(t, int64(500), res.Sender.BalanceBefore)
	require.Equal(t, int64(400), res.Sender.BalanceAfter)
	require.Equal(t, int64(0), res.Receiver.BalanceBefore)
	require.Equal(t, int64(100), res.Receiver.BalanceAfter)
	require.False(t, res.Replayed)

	// wallets updated, totals tracked
	gifterWallet, err := f.wallets.GetByUserID(ctx, gifterID)
	require.NoError(t, err)
	require.Equal(t, int64(400), gifterWallet.Balance)
	require.Equal(t, int64(100), gifterWallet.TotalSpent)
	require.NotNil(t, gifterWallet.LastTransactionAt)
	creatorWallet, err := f.wallets.GetByUserID(ctx, creatorID)
	require.NoError(t, err)
	require.Equal(t, int64(100), creatorWallet.Balance)
	require.Equal(t, int64(100), creatorWallet.TotalReceived)

	// exactly one transfer and two ledger rows
	require.EqualValues(t, 1, f.countRows(t, "wallet_transfers"))
	entries, err := f.ledger.GetByTransferID(ctx, res.TransferID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entities.DirectionDebit, entries[0].Direction)
	require.Equal(t, entities.CategoryVideoGift, entries[0].Category)
	require.Equal(t, int64(500), entries[0].BalanceBefore)
	require.Equal(t, int64(400), entries[0].BalanceAfter)
	require.Equal(t, entities.DirectionCredit, entries[1].Direction)
	require.Equal(t, entities.CategoryGiftReceived, entries[1].Category)

	// gifts counter bumped on the video
	got, err := f.videos.GetByID(ctx, video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), got.Gifts)

	// event published after commit
	events := f.sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, entities.TransferTypeVideoGift, events[0].Type)
	require.Equal(t, res.TransferID, events[0].TransferID)
}

func TestGiftVideo_LazyWalletCreation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	// only the gifter has a wallet; the creator's is created on demand
	f.seedWallet(t, gifterID, 50)

	res, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{
		VideoID: video.ID.String(),
		Amount:  50,
	}, "")
	require.NoError(t, err)
	require.Equal(t, int64(50), res.Receiver.BalanceAfter)

	creatorWallet, err := f.wallets.GetByUserID(ctx, creatorID)
	require.NoError(t, err)
	require.Equal(t, int64(50), creatorWallet.Balance)
	require.Equal(t, entities.CurrencyINR, creatorWallet.Currency)
}

func TestGiftVideo_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 5000)

	_, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: "not-a-uuid", Amount: 10}, "")
	requireAppErrorCode(t, err, "MISSING_REQUIRED_FIELDS")

	_, err = f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 0}, "")
	requireAppErrorCode(t, err, "INVALID_AMOUNT")
	_, err = f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 1001}, "")
	requireAppErrorCode(t, err, "INVALID_AMOUNT")

	_, err = f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: uuid.New().String(), Amount: 10}, "")
	requireAppErrorCode(t, err, "VIDEO_NOT_FOUND")

	unmonetized := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, false)
	_, err = f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: unmonetized.ID.String(), Amount: 10}, "")
	requireAppErrorCode(t, err, "VIDEO_NOT_MONETIZED")

	// self gift rejected before any write
	_, err = f.transferUC.GiftVideo(ctx, creatorID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 10}, "")
	requireAppErrorCode(t, err, "CANNOT_GIFT_SELF")
	require.EqualValues(t, 0, f.countRows(t, "wallet_transfers"))
	require.EqualValues(t, 0, f.countRows(t, "wallet_transactions"))
}

func TestGiftVideo_DeletedVideoBehavesAsMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 500)

	require.NoError(t, f.db.Table("videos").Where("id = ?", video.ID).
		Updates(map[string]interface{}{"visibility": entities.VisibilityHidden, "hidden_reason": entities.HiddenReasonDeleted}).Error)

	_, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 10}, "")
	requireAppErrorCode(t, err, "VIDEO_NOT_FOUND")
}

func TestGiftVideo_InsufficientBalanceRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 30)
	f.seedWallet(t, creatorID, 0)

	_, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{
		VideoID: video.ID.String(),
		Amount:  100,
	}, "")
	appErr := requireAppErrorCode(t, err, "INSUFFICIENT_BALANCE")
	require.EqualValues(t, int64(30), appErr.Details["currentBalance"])
	require.EqualValues(t, int64(100), appErr.Details["requiredAmount"])
	require.EqualValues(t, int64(70), appErr.Details["shortfall"])

	// nothing was written anywhere
	require.EqualValues(t, 0, f.countRows(t, "wallet_transfers"))
	require.EqualValues(t, 0, f.countRows(t, "wallet_transactions"))
	gifterWallet, err := f.wallets.GetByUserID(ctx, gifterID)
	require.NoError(t, err)
	require.Equal(t, int64(30), gifterWallet.Balance)
	got, err := f.videos.GetByID(ctx, video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.Gifts)
	require.Empty(t, f.sink.Events())
}

func TestGiftVideo_InactiveWallets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)

	gifterWallet := f.seedWallet(t, gifterID, 500)
	require.NoError(t, f.wallets.UpdateStatus(ctx, gifterWallet.ID, entities.WalletStatusSuspended))

	_, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 10}, "")
	requireAppErrorCode(t, err, "WALLET_INACTIVE")

	require.NoError(t, f.wallets.UpdateStatus(ctx, gifterWallet.ID, entities.WalletStatusActive))
	creatorWallet := f.seedWallet(t, creatorID, 0)
	require.NoError(t, f.wallets.UpdateStatus(ctx, creatorWallet.ID, entities.WalletStatusClosed))

	_, err = f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 10}, "")
	requireAppErrorCode(t, err, "RECEIVER_WALLET_INACTIVE")
}

func TestGiftVideo_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 500)

	input := &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 100}
	first, err := f.transferUC.GiftVideo(ctx, gifterID, input, "gift-key-1")
	require.NoError(t, err)
	require.False(t, first.Replayed)

	second, err := f.transferUC.GiftVideo(ctx, gifterID, input, "gift-key-1")
	require.NoError(t, err)
	require.True(t, second.Replayed)
	require.Equal(t, first.TransferID, second.TransferID)
	require.Equal(t, first.Sender.BalanceAfter, second.Sender.BalanceAfter)

	// no second debit happened
	wallet, err := f.wallets.GetByUserID(ctx, gifterID)
	require.NoError(t, err)
	require.Equal(t, int64(400), wallet.Balance)
	require.EqualValues(t, 1, f.countRows(t, "wallet_transfers"))
}

func TestGiftComment_SuccessAndPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	commenterID := f.seedUser(t, "commenter", false)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	comment := f.seedComment(t, video.ID, commenterID, true, nil)
	f.seedWallet(t, gifterID, 500)

	res, err := f.transferUC.GiftComment(ctx, gifterID, &entities.GiftCommentInput{
		VideoID:   video.ID.String(),
		CommentID: comment.ID.String(),
		Amount:    25,
		GiftNote:  "loved this take",
	}, "")
	require.NoError(t, err)
	require.Equal(t, int64(25), res.CreatorAmount)
	require.Equal(t, int64(0), res.PlatformAmount)

	// note lands on the transfer record
	tr, err := f.transfers.GetByID(ctx, res.TransferID)
	require.NoError(t, err)
	require.Equal(t, "loved this take", tr.TransferNote.String)
	require.Equal(t, entities.TransferTypeCommentGift, tr.TransferType)

	// comment gifts do not touch the video gifts counter
	got, err := f.videos.GetByID(ctx, video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.Gifts)

	// wrong video for the comment
	otherVideo := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	_, err = f.transferUC.GiftComment(ctx, gifterID, &entities.GiftCommentInput{
		VideoID: otherVideo.ID.String(), CommentID: comment.ID.String(), Amount: 10,
	}, "")
	requireAppErrorCode(t, err, "COMMENT_NOT_FOUND")

	// replies cannot be gifted
	reply := f.seedComment(t, video.ID, commenterID, true, &comment.ID)
	_, err = f.transferUC.GiftComment(ctx, gifterID, &entities.GiftCommentInput{
		VideoID: video.ID.String(), CommentID: reply.ID.String(), Amount: 10,
	}, "")
	requireAppErrorCode(t, err, "CANNOT_GIFT_REPLIES")

	// unmonetized comments cannot be gifted
	plain := f.seedComment(t, video.ID, commenterID, false, nil)
	_, err = f.transferUC.GiftComment(ctx, gifterID, &entities.GiftCommentInput{
		VideoID: video.ID.String(), CommentID: plain.ID.String(), Amount: 10,
	}, "")
	requireAppErrorCode(t, err, "COMMENT_NOT_MONETIZED")

	// own comment
	_, err = f.transferUC.GiftComment(ctx, commenterID, &entities.GiftCommentInput{
		VideoID: video.ID.String(), CommentID: comment.ID.String(), Amount: 10,
	}, "")
	requireAppErrorCode(t, err, "CANNOT_GIFT_SELF")

	// oversized note
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	_, err = f.transferUC.GiftComment(ctx, gifterID, &entities.GiftCommentInput{
		VideoID: video.ID.String(), CommentID: comment.ID.String(), Amount: 10, GiftNote: string(long),
	}, "")
	requireAppErrorCode(t, err, "INVALID_GIFT_NOTE")
}

func TestPurchaseVideo_FeeSplitAndGrant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	buyerID := f.seedUser(t, "buyer", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypePaid, 100, true)
	f.seedWallet(t, buyerID, 500)
	f.seedWallet(t, creatorID, 0)

	res, err := f.transferUC.PurchaseVideo(ctx, buyerID, video.ID, &entities.PurchaseInput{Amount: 100}, "")
	require.NoError(t, err)

	// 30% platform fee, exact split
	require.Equal(t, int64(100), res.TotalAmount)
	require.Equal(t, int64(30), res.PlatformAmount)
	require.Equal(t, int64(70), res.CreatorAmount)
	require.Equal(t, res.TotalAmount, res.CreatorAmount+res.PlatformAmount)

	// buyer debited the full price, creator credited only their share
	buyerWallet, err := f.wallets.GetByUserID(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, int64(400), buyerWallet.Balance)
	creatorWallet, err := f.wallets.GetByUserID(ctx, creatorID)
	require.NoError(t, err)
	require.Equal(t, int64(70), creatorWallet.Balance)

	// durable grant referencing the transfer
	grant, err := f.grants.Find(ctx, buyerID, video.ID, entities.ContentTypeVideo)
	require.NoError(t, err)
	require.Equal(t, entities.AccessTypePaid, grant.AccessType)
	require.Equal(t, res.TransferID, *grant.PaymentID)
	require.Equal(t, int64(100), grant.PaymentAmount)
	require.Nil(t, grant.ExpiresAt)

	// second purchase is rejected and nothing moves
	_, err = f.transferUC.PurchaseVideo(ctx, buyerID, video.ID, &entities.PurchaseInput{Amount: 100}, "")
	requireAppErrorCode(t, err, "ALREADY_PURCHASED")
	buyerWallet, err = f.wallets.GetByUserID(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, int64(400), buyerWallet.Balance)
	require.EqualValues(t, 1, f.countRows(t, "wallet_transfers"))
}

func TestPurchaseVideo_FeeRounding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	buyerID := f.seedUser(t, "buyer", false)
	// 99 * 30% = 29.7, rounds half up to 30
	video := f.seedVideo(t, creatorID, entities.VideoTypePaid, 99, true)
	f.seedWallet(t, buyerID, 500)

	res, err := f.transferUC.PurchaseVideo(ctx, buyerID, video.ID, &entities.PurchaseInput{Amount: 99}, "")
	require.NoError(t, err)
	require.Equal(t, int64(30), res.PlatformAmount)
	require.Equal(t, int64(69), res.CreatorAmount)
	require.Equal(t, res.TotalAmount, res.CreatorAmount+res.PlatformAmount)
}

func TestPurchaseVideo_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	buyerID := f.seedUser(t, "buyer", false)
	f.seedWallet(t, buyerID, 5000)

	_, err := f.transferUC.PurchaseVideo(ctx, buyerID, uuid.New(), &entities.PurchaseInput{Amount: 100}, "")
	requireAppErrorCode(t, err, "VIDEO_NOT_FOUND")

	free := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	_, err = f.transferUC.PurchaseVideo(ctx, buyerID, free.ID, &entities.PurchaseInput{Amount: 100}, "")
	requireAppErrorCode(t, err, "VIDEO_NOT_PAID")

	paid := f.seedVideo(t, creatorID, entities.VideoTypePaid, 100, true)
	_, err = f.transferUC.PurchaseVideo(ctx, creatorID, paid.ID, &entities.PurchaseInput{Amount: 100}, "")
	requireAppErrorCode(t, err, "CANNOT_BUY_OWN_VIDEO")

	_, err = f.transferUC.PurchaseVideo(ctx, buyerID, paid.ID, &entities.PurchaseInput{Amount: 95}, "")
	requireAppErrorCode(t, err, "INVALID_AMOUNT")
}

func TestPurchaseSeries_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	buyerID := f.seedUser(t, "buyer", false)
	series := f.seedSeries(t, creatorID, entities.VideoTypePaid, 500)
	f.seedWallet(t, buyerID, 1000)

	res, err := f.transferUC.PurchaseSeries(ctx, buyerID, series.ID, &entities.PurchaseInput{Amount: 500}, "")
	require.NoError(t, err)
	require.Equal(t, int64(150), res.PlatformAmount)
	require.Equal(t, int64(350), res.CreatorAmount)

	grant, err := f.grants.Find(ctx, buyerID, series.ID, entities.ContentTypeSeries)
	require.NoError(t, err)
	require.Equal(t, entities.AccessTypePaid, grant.AccessType)

	_, err = f.transferUC.PurchaseSeries(ctx, buyerID, series.ID, &entities.PurchaseInput{Amount: 500}, "")
	requireAppErrorCode(t, err, "ALREADY_PURCHASED")

	free := f.seedSeries(t, creatorID, entities.VideoTypeFree, 0)
	_, err = f.transferUC.PurchaseSeries(ctx, buyerID, free.ID, &entities.PurchaseInput{Amount: 0}, "")
	requireAppErrorCode(t, err, "SERIES_NOT_PAID")

	_, err = f.transferUC.PurchaseSeries(ctx, buyerID, uuid.New(), &entities.PurchaseInput{Amount: 500}, "")
	requireAppErrorCode(t, err, "SERIES_NOT_FOUND")
}

func TestPurchaseCreatorPass_LifecycleAndRenewal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	buyerID := f.seedUser(t, "buyer", false)
	f.seedWallet(t, buyerID, 1000)

	res, err := f.transferUC.PurchaseCreatorPass(ctx, buyerID, creatorID, &entities.PurchaseInput{Amount: 199}, "")
	require.NoError(t, err)
	require.Equal(t, entities.TransferTypeCreatorPassPurchase, res.TransferType)

	grant, err := f.grants.Find(ctx, buyerID, creatorID, entities.ContentTypeCreator)
	require.NoError(t, err)
	require.Equal(t, entities.AccessTypeCreatorPass, grant.AccessType)
	require.NotNil(t, grant.ExpiresAt)
	require.False(t, grant.IsExpired(time.Now()))

	// an active pass cannot be bought again
	_, err = f.transferUC.PurchaseCreatorPass(ctx, buyerID, creatorID, &entities.PurchaseInput{Amount: 199}, "")
	requireAppErrorCode(t, err, "ALREADY_PURCHASED")

	// expire the pass, then repurchase renews the same grant row
	expired := time.Now().Add(-time.Hour)
	require.NoError(t, f.db.Table("user_access").Where("id = ?", grant.ID).
		Update("expires_at", expired).Error)

	renewRes, err := f.transferUC.PurchaseCreatorPass(ctx, buyerID, creatorID, &entities.PurchaseInput{Amount: 199}, "")
	require.NoError(t, err)
	renewed, err := f.grants.Find(ctx, buyerID, creatorID, entities.ContentTypeCreator)
	require.NoError(t, err)
	require.Equal(t, grant.ID, renewed.ID)
	require.Equal(t, renewRes.TransferID, *renewed.PaymentID)
	require.False(t, renewed.IsExpired(time.Now()))

	// non-creators do not sell passes
	plainID := f.seedUser(t, "plain", false)
	_, err = f.transferUC.PurchaseCreatorPass(ctx, buyerID, plainID, &entities.PurchaseInput{Amount: 199}, "")
	requireAppErrorCode(t, err, "NOT_A_CREATOR")

	_, err = f.transferUC.PurchaseCreatorPass(ctx, creatorID, creatorID, &entities.PurchaseInput{Amount: 199}, "")
	requireAppErrorCode(t, err, "CANNOT_BUY_OWN_PASS")

	_, err = f.transferUC.PurchaseCreatorPass(ctx, buyerID, uuid.New(), &entities.PurchaseInput{Amount: 199}, "")
	requireAppErrorCode(t, err, "USER_NOT_FOUND")
}

func TestExecuteTransfer_ConservationAcrossMany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 1000)
	f.seedWallet(t, creatorID, 0)

	amounts := []int64{1, 7, 50, 123, 319}
	var sent int64
	for _, a := range amounts {
		_, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: a}, "")
		require.NoError(t, err)
		sent += a
	}

	gifterWallet, err := f.wallets.GetByUserID(ctx, gifterID)
	require.NoError(t, err)
	creatorWallet, err := f.wallets.GetByUserID(ctx, creatorID)
	require.NoError(t, err)

	// zero-fee transfers conserve the total across both wallets
	require.Equal(t, int64(1000)-sent, gifterWallet.Balance)
	require.Equal(t, sent, creatorWallet.Balance)
	require.Equal(t, int64(1000), gifterWallet.Balance+creatorWallet.Balance)
	require.EqualValues(t, len(amounts), f.countRows(t, "wallet_transfers"))
	require.EqualValues(t, 2*len(amounts), f.countRows(t, "wallet_transactions"))
}

func TestExecuteTransfer_NotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sink.err = context.DeadlineExceeded

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 100)

	res, err := f.transferUC.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 10}, "")
	require.NoError(t, err)
	require.NotNil(t, res)

	// the transfer committed even though publishing failed
	wallet, err := f.wallets.GetByUserID(ctx, gifterID)
	require.NoError(t, err)
	require.Equal(t, int64(90), wallet.Balance)
}

// interceptedWallets wraps a wallet store to run a hook right before a
// row is locked, standing in for a competing writer that got there
// first.
type interceptedWallets struct {
	domainRepos.WalletRepository
	beforeLock func(ctx context.Context, userID uuid.UUID)
}

func (w *interceptedWallets) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	if w.beforeLock != nil {
		w.beforeLock(ctx, userID)
	}
	return w.WalletRepository.GetByUserIDForUpdate(ctx, userID)
}

func (f *fixture) transferUCWithWallets(wallets domainRepos.WalletRepository) *usecases.TransferUsecase {
	return usecases.NewTransferUsecase(
		wallets, f.ledger, f.transfers, f.grants,
		f.videos, f.series, f.comments, f.users,
		f.uow, f.sink, f.cfg,
	)
}

func TestGiftVideo_LockedRecheckCatchesConcurrentSpend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 500)
	f.seedWallet(t, creatorID, 0)

	// drain the sender after the fail-fast check has passed, just
	// before the row lock is taken
	drained := false
	wallets := &interceptedWallets{WalletRepository: f.wallets, beforeLock: func(lockCtx context.Context, userID uuid.UUID) {
		if userID != gifterID || drained {
			return
		}
		drained = true
		db := repositories.GetDB(lockCtx, f.db)
		require.NoError(t, db.Exec("UPDATE wallets SET balance = balance - 450 WHERE user_id = ?", gifterID).Error)
	}}
	uc := f.transferUCWithWallets(wallets)

	_, err := uc.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 100}, "")
	appErr := requireAppErrorCode(t, err, "INSUFFICIENT_BALANCE")
	require.True(t, drained)

	// the shortfall reflects the locked re-read, not the stale
	// pre-check balance
	require.EqualValues(t, int64(50), appErr.Details["currentBalance"])
	require.EqualValues(t, int64(100), appErr.Details["requiredAmount"])
	require.EqualValues(t, int64(50), appErr.Details["shortfall"])

	// nothing was written and no event was published
	require.EqualValues(t, 0, f.countRows(t, "wallet_transfers"))
	require.EqualValues(t, 0, f.countRows(t, "wallet_transactions"))
	require.Empty(t, f.sink.Events())

	// the rollback covers the whole atomic section, including the
	// simulated competing spend
	wallet, err := f.wallets.GetByUserID(ctx, gifterID)
	require.NoError(t, err)
	require.Equal(t, int64(500), wallet.Balance)
}

func TestGiftVideo_LockedRecheckCatchesSuspension(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterID := f.seedUser(t, "gifter", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterID, 500)
	f.seedWallet(t, creatorID, 0)

	suspend := func(userID uuid.UUID) *interceptedWallets {
		done := false
		return &interceptedWallets{WalletRepository: f.wallets, beforeLock: func(lockCtx context.Context, lockedID uuid.UUID) {
			if lockedID != userID || done {
				return
			}
			done = true
			db := repositories.GetDB(lockCtx, f.db)
			require.NoError(t, db.Exec("UPDATE wallets SET status = ? WHERE user_id = ?", entities.WalletStatusSuspended, userID).Error)
		}}
	}

	uc := f.transferUCWithWallets(suspend(gifterID))
	_, err := uc.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 100}, "")
	requireAppErrorCode(t, err, "WALLET_INACTIVE")

	uc = f.transferUCWithWallets(suspend(creatorID))
	_, err = uc.GiftVideo(ctx, gifterID, &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 100}, "")
	requireAppErrorCode(t, err, "RECEIVER_WALLET_INACTIVE")

	require.EqualValues(t, 0, f.countRows(t, "wallet_transfers"))
	require.EqualValues(t, 0, f.countRows(t, "wallet_transactions"))
}

func TestIdempotencyKeys_ScopedPerSender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creatorID := f.seedUser(t, "creator", true)
	gifterA := f.seedUser(t, "gifter-a", false)
	gifterB := f.seedUser(t, "gifter-b", false)
	video := f.seedVideo(t, creatorID, entities.VideoTypeFree, 0, true)
	f.seedWallet(t, gifterA, 500)
	f.seedWallet(t, gifterB, 500)

	input := &entities.GiftVideoInput{VideoID: video.ID.String(), Amount: 100}
	resA, err := f.transferUC.GiftVideo(ctx, gifterA, input, "shared-key")
	require.NoError(t, err)

	// a different sender reusing the same key gets their own transfer,
	// not a replay and not a collision
	resB, err := f.transferUC.GiftVideo(ctx, gifterB, input, "shared-key")
	require.NoError(t, err)
	require.False(t, resB.Replayed)
	require.NotEqual(t, resA.TransferID, resB.TransferID)
	require.EqualValues(t, 2, f.countRows(t, "wallet_transfers"))

	// the original sender still replays
	resA2, err := f.transferUC.GiftVideo(ctx, gifterA, input, "shared-key")
	require.NoError(t, err)
	require.True(t, resA2.Replayed)
	require.Equal(t, resA.TransferID, resA2.TransferID)
	require.EqualValues(t, 2, f.countRows(t, "wallet_transfers"))
}
