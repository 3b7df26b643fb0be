package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellerbridge/backend/internal/domain/feeds"
)

// FeedSubmissionModel is the persistence model for the FeedSubmission domain entity.
type FeedSubmissionModel struct {
	ID               uuid.UUID              `gorm:"type:uuid;primary_key"`
	FeedType         feeds.FeedType         `gorm:"type:varchar(50);not null;index:idx_feed_submissions_feed_type"`
	SubmissionID     string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_feed_submissions_submission_id"`
	ProcessingStatus feeds.SubmissionStatus `gorm:"type:varchar(20);not null;index:idx_feed_submissions_status"`

	MessagesProcessed  *int64
	MessagesSuccessful *int64
	MessagesErrored    *int64 `gorm:"column:messages_with_error"`
	MessagesWarned     *int64 `gorm:"column:messages_with_warning"`

	Details []FeedSubmissionDetailModel `gorm:"foreignKey:SubmissionID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null;index:idx_feed_submissions_created_at"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FeedSubmissionModel) TableName() string {
	return "feed_submissions"
}

// ToDomain converts the persistence model to a domain FeedSubmission entity.
func (m *FeedSubmissionModel) ToDomain() *feeds.FeedSubmission {
	sub := &feeds.FeedSubmission{
		ID:                 m.ID,
		FeedType:           m.FeedType,
		SubmissionID:       m.SubmissionID,
		ProcessingStatus:   m.ProcessingStatus,
		MessagesProcessed:  m.MessagesProcessed,
		MessagesSuccessful: m.MessagesSuccessful,
		MessagesErrored:    m.MessagesErrored,
		MessagesWarned:     m.MessagesWarned,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	for i := range m.Details {
		sub.Details = append(sub.Details, *m.Details[i].ToDomain())
	}
	return sub
}

// FromDomain populates the persistence model from a domain FeedSubmission entity.
// Detail rows are converted separately; the repository inserts them only when new.
func (m *FeedSubmissionModel) FromDomain(sub *feeds.FeedSubmission) {
	m.ID = sub.ID
	m.FeedType = sub.FeedType
	m.SubmissionID = sub.SubmissionID
	m.ProcessingStatus = sub.ProcessingStatus
	m.MessagesProcessed = sub.MessagesProcessed
	m.MessagesSuccessful = sub.MessagesSuccessful
	m.MessagesErrored = sub.MessagesErrored
	m.MessagesWarned = sub.MessagesWarned
	m.CreatedAt = sub.CreatedAt
	m.UpdatedAt = sub.UpdatedAt
}

// FeedSubmissionModelFromDomain creates a new persistence model from a domain entity.
func FeedSubmissionModelFromDomain(sub *feeds.FeedSubmission) *FeedSubmissionModel {
	m := &FeedSubmissionModel{}
	m.FromDomain(sub)
	return m
}

// FeedSubmissionDetailModel is the persistence model for one per-record outcome.
type FeedSubmissionDetailModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index:idx_feed_submission_details_submission"`
	MessageID    string    `gorm:"type:varchar(20);not null"`
	ResultCode   string    `gorm:"type:varchar(20);not null"`
	MessageCode  string    `gorm:"type:varchar(20)"`
	Description  string    `gorm:"type:text"`
	// AdditionalInfoJSON stores the open diagnostic key/value pairs
	AdditionalInfoJSON string    `gorm:"type:jsonb;column:additional_info"`
	CreatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FeedSubmissionDetailModel) TableName() string {
	return "feed_submission_details"
}

// ToDomain converts the persistence model to a domain FeedSubmissionDetail.
func (m *FeedSubmissionDetailModel) ToDomain() *feeds.FeedSubmissionDetail {
	detail := &feeds.FeedSubmissionDetail{
		ID:             m.ID,
		SubmissionID:   m.SubmissionID,
		MessageID:      m.MessageID,
		ResultCode:     m.ResultCode,
		MessageCode:    m.MessageCode,
		Description:    m.Description,
		AdditionalInfo: map[string]string{},
		CreatedAt:      m.CreatedAt,
	}
	if m.AdditionalInfoJSON != "" {
		var info map[string]string
		if err := json.Unmarshal([]byte(m.AdditionalInfoJSON), &info); err == nil {
			detail.AdditionalInfo = info
		}
	}
	return detail
}

// FromDomain populates the persistence model from a domain FeedSubmissionDetail.
func (m *FeedSubmissionDetailModel) FromDomain(d *feeds.FeedSubmissionDetail) {
	m.ID = d.ID
	m.SubmissionID = d.SubmissionID
	m.MessageID = d.MessageID
	m.ResultCode = d.ResultCode
	m.MessageCode = d.MessageCode
	m.Description = d.Description
	m.CreatedAt = d.CreatedAt

	if len(d.AdditionalInfo) > 0 {
		if jsonBytes, err := json.Marshal(d.AdditionalInfo); err == nil {
			m.AdditionalInfoJSON = string(jsonBytes)
		}
	} else {
		m.AdditionalInfoJSON = "{}"
	}
}

// FeedSubmissionDetailModelFromDomain creates a new persistence model from a domain detail.
func FeedSubmissionDetailModelFromDomain(d *feeds.FeedSubmissionDetail) *FeedSubmissionDetailModel {
	m := &FeedSubmissionDetailModel{}
	m.FromDomain(d)
	return m
}
