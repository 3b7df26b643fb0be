package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sellerbridge/backend/internal/domain/feeds"
	"github.com/sellerbridge/backend/internal/domain/shared"
	"github.com/sellerbridge/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFeedSubmissionRepository implements feeds.FeedSubmissionRepository using GORM
type GormFeedSubmissionRepository struct {
	db *gorm.DB
}

// NewGormFeedSubmissionRepository creates a new GormFeedSubmissionRepository
func NewGormFeedSubmissionRepository(db *gorm.DB) *GormFeedSubmissionRepository {
	return &GormFeedSubmissionRepository{db: db}
}

// FindByID finds a submission by its local id, details included
func (r *GormFeedSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*feeds.FeedSubmission, error) {
	var model models.FeedSubmissionModel
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySubmissionID finds a submission by its remote id
func (r *GormFeedSubmissionRepository) FindBySubmissionID(ctx context.Context, submissionID string) (*feeds.FeedSubmission, error) {
	var model models.FeedSubmissionModel
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("submission_id = ?", submissionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPending returns all submissions in a pending status, optionally
// restricted to the given remote ids
func (r *GormFeedSubmissionRepository) FindPending(ctx context.Context, submissionIDs []string) ([]feeds.FeedSubmission, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FeedSubmissionModel{}).
		Where("processing_status IN ?", pendingStatusValues()).
		Order("created_at ASC")
	if len(submissionIDs) > 0 {
		query = query.Where("submission_id IN ?", submissionIDs)
	}

	var submissionModels []models.FeedSubmissionModel
	if err := query.Find(&submissionModels).Error; err != nil {
		return nil, err
	}

	submissions := make([]feeds.FeedSubmission, len(submissionModels))
	for i := range submissionModels {
		submissions[i] = *submissionModels[i].ToDomain()
	}
	return submissions, nil
}

// FindAll lists submissions matching the filter, newest first
func (r *GormFeedSubmissionRepository) FindAll(ctx context.Context, filter feeds.SubmissionFilter) ([]feeds.FeedSubmission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeedSubmissionModel{})
	if filter.FeedType != nil {
		query = query.Where("feed_type = ?", *filter.FeedType)
	}
	if filter.Status != nil {
		query = query.Where("processing_status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	sortField := ValidateSortField(filter.SortBy, FeedSubmissionSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var submissionModels []models.FeedSubmissionModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&submissionModels).Error; err != nil {
		return nil, 0, err
	}

	submissions := make([]feeds.FeedSubmission, len(submissionModels))
	for i := range submissionModels {
		submissions[i] = *submissionModels[i].ToDomain()
	}
	return submissions, total, nil
}

// Create persists a new submission record
func (r *GormFeedSubmissionRepository) Create(ctx context.Context, submission *feeds.FeedSubmission) error {
	model := models.FeedSubmissionModelFromDomain(submission)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateIfPending persists the submission's status, counters and any new
// detail rows, guarded so only a still-pending stored row is touched. A
// concurrent pass that already finished the row makes the guarded UPDATE
// match nothing, reported as shared.ErrConcurrencyConflict with no writes.
func (r *GormFeedSubmissionRepository) UpdateIfPending(ctx context.Context, submission *feeds.FeedSubmission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.FeedSubmissionModel{}).
			Where("id = ? AND processing_status IN ?", submission.ID, pendingStatusValues()).
			Updates(map[string]interface{}{
				"processing_status":     submission.ProcessingStatus,
				"messages_processed":    submission.MessagesProcessed,
				"messages_successful":   submission.MessagesSuccessful,
				"messages_with_error":   submission.MessagesErrored,
				"messages_with_warning": submission.MessagesWarned,
				"updated_at":            time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		for i := range submission.Details {
			detail := models.FeedSubmissionDetailModelFromDomain(&submission.Details[i])
			if err := tx.Where("id = ?", detail.ID).
				FirstOrCreate(detail).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// pendingStatusValues returns the pending statuses as plain strings for
// use in SQL IN clauses
func pendingStatusValues() []string {
	pending := feeds.PendingStatuses()
	values := make([]string, len(pending))
	for i, s := range pending {
		values[i] = s.String()
	}
	return values
}
