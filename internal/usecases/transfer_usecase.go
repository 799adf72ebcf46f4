package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"strmly.backend/internal/config"
	"strmly.backend/internal/domain/entities"
	domainerrors "strmly.backend/internal/domain/errors"
	"strmly.backend/internal/domain/repositories"
	"strmly.backend/internal/infrastructure/notifications"
	"strmly.backend/pkg/logger"
	"strmly.backend/pkg/metrics"
	"strmly.backend/pkg/utils"
)

const maxGiftNoteLength = 200

// TransferUsecase orchestrates wallet-to-wallet transfers: gifts and
// content purchases. Every operation validates outside the transaction,
// then runs an all-or-nothing atomic section over both wallets, the
// transfer record, the ledger and (for purchases) the access grant.
type TransferUsecase struct {
	walletRepo   repositories.WalletRepository
	ledgerRepo   repositories.LedgerRepository
	transferRepo repositories.TransferRepository
	grantRepo    repositories.AccessGrantRepository
	videoRepo    repositories.VideoRepository
	seriesRepo   repositories.SeriesRepository
	commentRepo  repositories.CommentRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
	sink         notifications.Sink
	cfg          config.WalletConfig
}

// NewTransferUsecase creates a new transfer usecase
func NewTransferUsecase(
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	transferRepo repositories.TransferRepository,
	grantRepo repositories.AccessGrantRepository,
	videoRepo repositories.VideoRepository,
	seriesRepo repositories.SeriesRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	sink notifications.Sink,
	cfg config.WalletConfig,
) *TransferUsecase {
	return &TransferUsecase{
		walletRepo:   walletRepo,
		ledgerRepo:   ledgerRepo,
		transferRepo: transferRepo,
		grantRepo:    grantRepo,
		videoRepo:    videoRepo,
		seriesRepo:   seriesRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		uow:          uow,
		sink:         sink,
		cfg:          cfg,
	}
}

// grantSpec describes the access grant a purchase creates
type grantSpec struct {
	contentID   uuid.UUID
	contentType string
	accessType  string
	expiresAt   *time.Time
}

// transferPlan is the validated instruction executeTransfer runs
type transferPlan struct {
	senderID          uuid.UUID
	receiverID        uuid.UUID
	amount            int64
	feePct            int
	transferType      string
	contentID         *uuid.UUID
	contentType       string
	debitDescription  string
	creditDescription string
	debitCategory     string
	creditCategory    string
	grant             *grantSpec
	giftedVideoID     *uuid.UUID
	idempotencyKey    string
	note              string
	eventMessage      string
}

// GiftVideo transfers a gift from the viewer to the video's creator.
// Gifts carry no platform fee.
func (u *TransferUsecase) GiftVideo(ctx context.Context, gifterID uuid.UUID, input *entities.GiftVideoInput, idempotencyKey string) (*entities.TransferResult, error) {
	videoID, err := uuid.Parse(input.VideoID)
	if err != nil {
		return nil, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", "a valid videoId is required")
	}
	if err := u.validateGiftAmount(input.Amount); err != nil {
		return nil, err
	}

	video, err := u.getVisibleVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsMonetized {
		return nil, domainerrors.Precondition("VIDEO_NOT_MONETIZED", "this video is not monetized", domainerrors.ErrNotMonetized)
	}
	if video.CreatedBy == gifterID {
		return nil, domainerrors.Precondition("CANNOT_GIFT_SELF", "you cannot gift your own video", domainerrors.ErrSelfTransfer)
	}

	return u.executeTransfer(ctx, &transferPlan{
		senderID:          gifterID,
		receiverID:        video.CreatedBy,
		amount:            input.Amount,
		feePct:            0,
		transferType:      entities.TransferTypeVideoGift,
		contentID:         &video.ID,
		contentType:       entities.ContentTypeVideo,
		debitDescription:  fmt.Sprintf("Gift sent for video: %s", video.Title),
		creditDescription: fmt.Sprintf("Gift received for video: %s", video.Title),
		debitCategory:     entities.CategoryVideoGift,
		creditCategory:    entities.CategoryGiftReceived,
		giftedVideoID:     &video.ID,
		idempotencyKey:    idempotencyKey,
		eventMessage:      fmt.Sprintf("You received a gift on your video %q", video.Title),
	})
}

// GiftComment transfers a gift from the viewer to a monetized top-level
// comment's author.
func (u *TransferUsecase) GiftComment(ctx context.Context, gifterID uuid.UUID, input *entities.GiftCommentInput, idempotencyKey string) (*entities.TransferResult, error) {
	videoID, err := uuid.Parse(input.VideoID)
	if err != nil {
		return nil, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", "a valid videoId is required")
	}
	commentID, err := uuid.Parse(input.CommentID)
	if err != nil {
		return nil, domainerrors.BadRequest("MISSING_REQUIRED_FIELDS", "a valid commentId is required")
	}
	if err := u.validateGiftAmount(input.Amount); err != nil {
		return nil, err
	}
	if len(input.GiftNote) > maxGiftNoteLength {
		return nil, domainerrors.BadRequest("INVALID_GIFT_NOTE", fmt.Sprintf("gift note must be at most %d characters", maxGiftNoteLength))
	}

	if _, err := u.getVisibleVideo(ctx, videoID); err != nil {
		return nil, err
	}
	comment, err := u.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("COMMENT_NOT_FOUND", "comment not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if comment.VideoID != videoID {
		return nil, domainerrors.NotFound("COMMENT_NOT_FOUND", "comment not found on this video")
	}
	if comment.IsReply() {
		return nil, domainerrors.Precondition("CANNOT_GIFT_REPLIES", "replies cannot be gifted", domainerrors.ErrInvalidInput)
	}
	if !comment.IsMonetized {
		return nil, domainerrors.Precondition("COMMENT_NOT_MONETIZED", "this comment is not monetized", domainerrors.ErrNotMonetized)
	}
	if comment.UserID == gifterID {
		return nil, domainerrors.Precondition("CANNOT_GIFT_SELF", "you cannot gift your own comment", domainerrors.ErrSelfTransfer)
	}

	return u.executeTransfer(ctx, &transferPlan{
		senderID:          gifterID,
		receiverID:        comment.UserID,
		amount:            input.Amount,
		feePct:            0,
		transferType:      entities.TransferTypeCommentGift,
		contentID:         &comment.ID,
		contentType:       "comment",
		debitDescription:  "Gift sent for a comment",
		creditDescription: "Gift received for your comment",
		debitCategory:     entities.CategoryCommentGift,
		creditCategory:    entities.CategoryGiftReceived,
		idempotencyKey:    idempotencyKey,
		note:              input.GiftNote,
		eventMessage:      "You received a gift on your comment",
	})
}

// PurchaseVideo buys permanent access to a paid video. The platform fee
// is taken from the price; the remainder goes to the creator.
func (u *TransferUsecase) PurchaseVideo(ctx context.Context, buyerID, videoID uuid.UUID, input *entities.PurchaseInput, idempotencyKey string) (*entities.TransferResult, error) {
	video, err := u.getVisibleVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Type != entities.VideoTypePaid {
		return nil, domainerrors.Precondition("VIDEO_NOT_PAID", "this video is free to watch", domainerrors.ErrInvalidInput)
	}
	if video.CreatedBy == buyerID {
		return nil, domainerrors.Precondition("CANNOT_BUY_OWN_VIDEO", "you cannot purchase your own video", domainerrors.ErrSelfTransfer)
	}

	price := video.Price
	if price <= 0 {
		price = u.cfg.DefaultVideoPrice
	}
	if input.Amount != price {
		return nil, domainerrors.Precondition("INVALID_AMOUNT", fmt.Sprintf("amount must equal the video price of %d", price), domainerrors.ErrInvalidInput)
	}
	if err := u.checkNotPurchased(ctx, buyerID, videoID, entities.ContentTypeVideo); err != nil {
		return nil, err
	}

	return u.executeTransfer(ctx, &transferPlan{
		senderID:          buyerID,
		receiverID:        video.CreatedBy,
		amount:            price,
		feePct:            u.cfg.PlatformFeePercentage,
		transferType:      entities.TransferTypeVideoPurchase,
		contentID:         &video.ID,
		contentType:       entities.ContentTypeVideo,
		debitDescription:  fmt.Sprintf("Purchased video: %s", video.Title),
		creditDescription: fmt.Sprintf("Earning from video: %s", video.Title),
		debitCategory:     entities.CategoryVideoPurchase,
		creditCategory:    entities.CategoryCreatorEarning,
		grant: &grantSpec{
			contentID:   video.ID,
			contentType: entities.ContentTypeVideo,
			accessType:  entities.AccessTypePaid,
		},
		idempotencyKey: idempotencyKey,
		note:           input.TransferNote,
		eventMessage:   fmt.Sprintf("Your video %q was purchased", video.Title),
	})
}

// PurchaseSeries buys permanent access to every episode of a paid
// series.
func (u *TransferUsecase) PurchaseSeries(ctx context.Context, buyerID, seriesID uuid.UUID, input *entities.PurchaseInput, idempotencyKey string) (*entities.TransferResult, error) {
	series, err := u.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("SERIES_NOT_FOUND", "series not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if series.Type != entities.VideoTypePaid {
		return nil, domainerrors.Precondition("SERIES_NOT_PAID", "this series is free to watch", domainerrors.ErrInvalidInput)
	}
	if series.CreatedBy == buyerID {
		return nil, domainerrors.Precondition("CANNOT_BUY_OWN_SERIES", "you cannot purchase your own series", domainerrors.ErrSelfTransfer)
	}
	if input.Amount != series.Price {
		return nil, domainerrors.Precondition("INVALID_AMOUNT", fmt.Sprintf("amount must equal the series price of %d", series.Price), domainerrors.ErrInvalidInput)
	}
	if err := u.checkNotPurchased(ctx, buyerID, seriesID, entities.ContentTypeSeries); err != nil {
		return nil, err
	}

	return u.executeTransfer(ctx, &transferPlan{
		senderID:          buyerID,
		receiverID:        series.CreatedBy,
		amount:            series.Price,
		feePct:            u.cfg.PlatformFeePercentage,
		transferType:      entities.TransferTypeSeriesPurchase,
		contentID:         &series.ID,
		contentType:       entities.ContentTypeSeries,
		debitDescription:  fmt.Sprintf("Purchased series: %s", series.Title),
		creditDescription: fmt.Sprintf("Earning from series: %s", series.Title),
		debitCategory:     entities.CategorySeriesPurchase,
		creditCategory:    entities.CategoryCreatorEarning,
		grant: &grantSpec{
			contentID:   series.ID,
			contentType: entities.ContentTypeSeries,
			accessType:  entities.AccessTypePaid,
		},
		idempotencyKey: idempotencyKey,
		note:           input.TransferNote,
		eventMessage:   fmt.Sprintf("Your series %q was purchased", series.Title),
	})
}

// PurchaseCreatorPass buys time-bound access to a creator's whole
// catalog. An expired pass can be repurchased; the existing grant is
// renewed in place.
func (u *TransferUsecase) PurchaseCreatorPass(ctx context.Context, buyerID, creatorID uuid.UUID, input *entities.PurchaseInput, idempotencyKey string) (*entities.TransferResult, error) {
	creator, err := u.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("USER_NOT_FOUND", "creator not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if !creator.IsCreator {
		return nil, domainerrors.Precondition("NOT_A_CREATOR", "this user does not offer a creator pass", domainerrors.ErrInvalidInput)
	}
	if creatorID == buyerID {
		return nil, domainerrors.Precondition("CANNOT_BUY_OWN_PASS", "you cannot purchase your own pass", domainerrors.ErrSelfTransfer)
	}
	if input.Amount != u.cfg.CreatorPassPrice {
		return nil, domainerrors.Precondition("INVALID_AMOUNT", fmt.Sprintf("amount must equal the pass price of %d", u.cfg.CreatorPassPrice), domainerrors.ErrInvalidInput)
	}
	if grant, err := u.grantRepo.Find(ctx, buyerID, creatorID, entities.ContentTypeCreator); err == nil {
		if !grant.IsExpired(time.Now()) {
			return nil, domainerrors.Precondition("ALREADY_PURCHASED", "you already hold an active pass for this creator", domainerrors.ErrAlreadyPurchased)
		}
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	expiresAt := time.Now().Add(u.cfg.CreatorPassValidity)
	return u.executeTransfer(ctx, &transferPlan{
		senderID:          buyerID,
		receiverID:        creatorID,
		amount:            input.Amount,
		feePct:            u.cfg.PlatformFeePercentage,
		transferType:      entities.TransferTypeCreatorPassPurchase,
		contentID:         &creator.ID,
		contentType:       entities.ContentTypeCreator,
		debitDescription:  fmt.Sprintf("Purchased creator pass: %s", creator.Username),
		creditDescription: "Earning from your creator pass",
		debitCategory:     entities.CategoryCreatorPassPurchase,
		creditCategory:    entities.CategoryCreatorEarning,
		grant: &grantSpec{
			contentID:   creator.ID,
			contentType: entities.ContentTypeCreator,
			accessType:  entities.AccessTypeCreatorPass,
			expiresAt:   &expiresAt,
		},
		idempotencyKey: idempotencyKey,
		note:           input.TransferNote,
		eventMessage:   "Someone bought your creator pass",
	})
}

// executeTransfer runs the atomic section for a validated plan. All
// writes happen inside one unit of work; post-commit side effects are
// best effort.
func (u *TransferUsecase) executeTransfer(ctx context.Context, plan *transferPlan) (*entities.TransferResult, error) {
	if plan.idempotencyKey != "" {
		prior, err := u.transferRepo.GetByIdempotencyKey(ctx, plan.senderID, plan.idempotencyKey)
		if err == nil {
			return replayedResult(prior), nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InternalError(err)
		}
	}

	senderWallet, err := u.ensureWallet(ctx, plan.senderID)
	if err != nil {
		return nil, err
	}
	if !senderWallet.IsActive() {
		return nil, domainerrors.Precondition("WALLET_INACTIVE", "your wallet is not active", domainerrors.ErrWalletInactive)
	}
	receiverWallet, err := u.ensureWallet(ctx, plan.receiverID)
	if err != nil {
		return nil, err
	}
	if !receiverWallet.IsActive() {
		return nil, domainerrors.Precondition("RECEIVER_WALLET_INACTIVE", "the receiver's wallet is not active", domainerrors.ErrWalletInactive)
	}
	if senderWallet.Balance < plan.amount {
		return nil, insufficientBalance(senderWallet.Balance, plan.amount)
	}

	var result *entities.TransferResult
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		sender, receiver, err := u.lockWallets(txCtx, plan.senderID, plan.receiverID)
		if err != nil {
			return err
		}
		// re-check under the lock: another transfer may have spent the
		// balance, or an admin frozen a wallet, between validation and
		// here
		if !sender.IsActive() {
			return domainerrors.Precondition("WALLET_INACTIVE", "your wallet is not active", domainerrors.ErrWalletInactive)
		}
		if !receiver.IsActive() {
			return domainerrors.Precondition("RECEIVER_WALLET_INACTIVE", "the receiver's wallet is not active", domainerrors.ErrWalletInactive)
		}
		if sender.Balance < plan.amount {
			return insufficientBalance(sender.Balance, plan.amount)
		}

		var renewal *entities.AccessGrant
		if plan.grant != nil {
			existing, err := u.grantRepo.Find(txCtx, plan.senderID, plan.grant.contentID, plan.grant.contentType)
			switch {
			case err == nil:
				if plan.grant.expiresAt == nil || !existing.IsExpired(time.Now()) {
					return domainerrors.Precondition("ALREADY_PURCHASED", "you already purchased this content", domainerrors.ErrAlreadyPurchased)
				}
				renewal = existing
			case !errors.Is(err, domainerrors.ErrNotFound):
				return err
			}
		}

		platformAmount := roundHalfUpPercent(plan.amount, plan.feePct)
		creatorAmount := plan.amount - platformAmount
		now := time.Now()

		transfer := &entities.Transfer{
			ID:                     utils.GenerateUUIDv7(),
			SenderID:               plan.senderID,
			ReceiverID:             plan.receiverID,
			SenderWalletID:         sender.ID,
			ReceiverWalletID:       receiver.ID,
			TotalAmount:            plan.amount,
			CreatorAmount:          creatorAmount,
			PlatformAmount:         platformAmount,
			Currency:               entities.CurrencyINR,
			TransferType:           plan.transferType,
			ContentID:              plan.contentID,
			ContentType:            plan.contentType,
			Description:            plan.debitDescription,
			SenderBalanceBefore:    sender.Balance,
			SenderBalanceAfter:     sender.Balance - plan.amount,
			ReceiverBalanceBefore:  receiver.Balance,
			ReceiverBalanceAfter:   receiver.Balance + creatorAmount,
			PlatformFeePercentage:  plan.feePct,
			CreatorSharePercentage: 100 - plan.feePct,
			Status:                 entities.TransferStatusCompleted,
			CreatedAt:              now,
		}
		if plan.idempotencyKey != "" {
			transfer.IdempotencyKey = null.StringFrom(plan.idempotencyKey)
		}
		if plan.note != "" {
			transfer.TransferNote = null.StringFrom(plan.note)
		}
		if err := u.transferRepo.Create(txCtx, transfer); err != nil {
			return err
		}

		senderBefore := sender.Balance
		sender.Balance -= plan.amount
		sender.TotalSpent += plan.amount
		sender.LastTransactionAt = &now
		if err := u.walletRepo.ApplyBalanceChange(txCtx, sender); err != nil {
			return err
		}

		receiverBefore := receiver.Balance
		receiver.Balance += creatorAmount
		receiver.TotalReceived += creatorAmount
		receiver.LastTransactionAt = &now
		if err := u.walletRepo.ApplyBalanceChange(txCtx, receiver); err != nil {
			return err
		}

		debit := &entities.LedgerEntry{
			ID:            utils.GenerateUUIDv7(),
			WalletID:      sender.ID,
			UserID:        plan.senderID,
			Direction:     entities.DirectionDebit,
			Category:      plan.debitCategory,
			Amount:        plan.amount,
			Currency:      entities.CurrencyINR,
			Description:   plan.debitDescription,
			BalanceBefore: senderBefore,
			BalanceAfter:  sender.Balance,
			ContentID:     plan.contentID,
			ContentType:   plan.contentType,
			TransferID:    transfer.ID,
			Status:        entities.TransferStatusCompleted,
			CreatedAt:     now,
		}
		if err := u.ledgerRepo.Create(txCtx, debit); err != nil {
			return err
		}
		credit := &entities.LedgerEntry{
			ID:            utils.GenerateUUIDv7(),
			WalletID:      receiver.ID,
			UserID:        plan.receiverID,
			Direction:     entities.DirectionCredit,
			Category:      plan.creditCategory,
			Amount:        creatorAmount,
			Currency:      entities.CurrencyINR,
			Description:   plan.creditDescription,
			BalanceBefore: receiverBefore,
			BalanceAfter:  receiver.Balance,
			ContentID:     plan.contentID,
			ContentType:   plan.contentType,
			TransferID:    transfer.ID,
			Status:        entities.TransferStatusCompleted,
			CreatedAt:     now,
		}
		if err := u.ledgerRepo.Create(txCtx, credit); err != nil {
			return err
		}

		if plan.grant != nil {
			grant := &entities.AccessGrant{
				ID:            utils.GenerateUUIDv7(),
				UserID:        plan.senderID,
				ContentID:     plan.grant.contentID,
				ContentType:   plan.grant.contentType,
				AccessType:    plan.grant.accessType,
				PaymentID:     &transfer.ID,
				PaymentAmount: plan.amount,
				GrantedAt:     now,
				ExpiresAt:     plan.grant.expiresAt,
			}
			if renewal != nil {
				grant.ID = renewal.ID
				if err := u.grantRepo.Renew(txCtx, grant); err != nil {
					return err
				}
			} else if err := u.grantRepo.Create(txCtx, grant); err != nil {
				return err
			}
			metrics.RecordAccessGrant(grant.ContentType, grant.AccessType)
		}

		if plan.giftedVideoID != nil {
			if err := u.videoRepo.IncrementGifts(txCtx, *plan.giftedVideoID, plan.amount); err != nil {
				return err
			}
		}

		result = &entities.TransferResult{
			TransferID:     transfer.ID,
			TransferType:   transfer.TransferType,
			TotalAmount:    transfer.TotalAmount,
			CreatorAmount:  transfer.CreatorAmount,
			PlatformAmount: transfer.PlatformAmount,
			Sender: entities.PartyBalances{
				BalanceBefore: transfer.SenderBalanceBefore,
				BalanceAfter:  transfer.SenderBalanceAfter,
			},
			Receiver: entities.PartyBalances{
				BalanceBefore: transfer.ReceiverBalanceBefore,
				BalanceAfter:  transfer.ReceiverBalanceAfter,
			},
			CreatedAt: transfer.CreatedAt,
		}
		return nil
	})
	if err != nil {
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logger.Error(ctx, "transfer transaction aborted",
			zap.String("transfer_type", plan.transferType),
			zap.String("sender_id", plan.senderID.String()),
			zap.Error(err))
		return nil, domainerrors.TransactionError(err)
	}

	metrics.RecordTransfer(plan.transferType, plan.amount)
	u.notify(ctx, plan, result)
	return result, nil
}

// lockWallets takes row locks on both wallets in a deterministic order
// so concurrent transfers over the same pair cannot deadlock.
func (u *TransferUsecase) lockWallets(ctx context.Context, senderID, receiverID uuid.UUID) (*entities.Wallet, *entities.Wallet, error) {
	first, second := senderID, receiverID
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}

	w1, err := u.walletRepo.GetByUserIDForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	w2, err := u.walletRepo.GetByUserIDForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if w1.UserID == senderID {
		return w1, w2, nil
	}
	return w2, w1, nil
}

// ensureWallet returns the user's wallet, creating it on first use
func (u *TransferUsecase) ensureWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	wallet = &entities.Wallet{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Currency:  entities.CurrencyINR,
		Status:    entities.WalletStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		// lost a race against another first-use creation
		if existing, getErr := u.walletRepo.GetByUserID(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, domainerrors.InternalError(err)
	}
	return wallet, nil
}

func (u *TransferUsecase) validateGiftAmount(amount int64) error {
	if amount < u.cfg.GiftMinAmount || amount > u.cfg.GiftMaxAmount {
		return domainerrors.Precondition("INVALID_AMOUNT",
			fmt.Sprintf("gift amount must be between %d and %d", u.cfg.GiftMinAmount, u.cfg.GiftMaxAmount),
			domainerrors.ErrInvalidInput)
	}
	return nil
}

// getVisibleVideo fetches a video, treating hidden and soft-deleted
// videos as missing.
func (u *TransferUsecase) getVisibleVideo(ctx context.Context, videoID uuid.UUID) (*entities.Video, error) {
	video, err := u.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("VIDEO_NOT_FOUND", "video not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if video.IsDeleted() || video.Visibility != entities.VisibilityPublic {
		return nil, domainerrors.NotFound("VIDEO_NOT_FOUND", "video not found")
	}
	return video, nil
}

func (u *TransferUsecase) checkNotPurchased(ctx context.Context, userID, contentID uuid.UUID, contentType string) error {
	_, err := u.grantRepo.Find(ctx, userID, contentID, contentType)
	if err == nil {
		return domainerrors.Precondition("ALREADY_PURCHASED", "you already purchased this content", domainerrors.ErrAlreadyPurchased)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.InternalError(err)
	}
	return nil
}

func (u *TransferUsecase) notify(ctx context.Context, plan *transferPlan, result *entities.TransferResult) {
	event := notifications.Event{
		Type:           plan.transferType,
		TransferID:     result.TransferID,
		SenderID:       plan.senderID,
		ReceiverID:     plan.receiverID,
		Amount:         result.TotalAmount,
		CreatorAmount:  result.CreatorAmount,
		PlatformAmount: result.PlatformAmount,
		ContentID:      plan.contentID,
		ContentType:    plan.contentType,
		Message:        plan.eventMessage,
		OccurredAt:     result.CreatedAt,
	}
	if err := u.sink.Publish(ctx, event); err != nil {
		logger.Error(ctx, "failed to publish transfer event",
			zap.String("event", plan.transferType),
			zap.String("transfer_id", result.TransferID.String()),
			zap.Error(err))
		metrics.RecordNotification(plan.transferType, "error")
		return
	}
	metrics.RecordNotification(plan.transferType, "ok")
}

func insufficientBalance(balance, required int64) *domainerrors.AppError {
	return domainerrors.Precondition("INSUFFICIENT_BALANCE", "insufficient wallet balance", domainerrors.ErrInsufficientBalance).
		WithDetails(map[string]interface{}{
			"currentBalance": balance,
			"requiredAmount": required,
			"shortfall":      required - balance,
		})
}

// roundHalfUpPercent computes pct% of amount in integer minor units,
// rounding half up.
func roundHalfUpPercent(amount int64, pct int) int64 {
	return (amount*int64(pct) + 50) / 100
}

func replayedResult(t *entities.Transfer) *entities.TransferResult {
	return &entities.TransferResult{
		TransferID:     t.ID,
		TransferType:   t.TransferType,
		TotalAmount:    t.TotalAmount,
		CreatorAmount:  t.CreatorAmount,
		PlatformAmount: t.PlatformAmount,
		Sender: entities.PartyBalances{
			BalanceBefore: t.SenderBalanceBefore,
			BalanceAfter:  t.SenderBalanceAfter,
		},
		Receiver: entities.PartyBalances{
			BalanceBefore: t.ReceiverBalanceBefore,
			BalanceAfter:  t.ReceiverBalanceAfter,
		},
		Replayed:  true,
		CreatedAt: t.CreatedAt,
	}
}
