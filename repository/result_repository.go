package repository

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/purge-dev/CliniCord/models"
)

// ResultRepository is the append-only store of completed assessment
// results, keyed by user and completion time. Nothing updates or deletes a
// record once written.
type ResultRepository interface {
	SaveRecord(record *models.AssessmentRecord) error
	GetRecordsByUserID(userID string) ([]*models.AssessmentRecord, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository creates a new instance of ResultRepository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// SaveRecord appends one completed-assessment record.
func (r *resultRepository) SaveRecord(record *models.AssessmentRecord) error {
	if record == nil {
		log.Println("ERROR: [ResultRepository] SaveRecord: record cannot be nil")
		return errors.New("record cannot be nil")
	}
	if err := r.db.Create(record).Error; err != nil {
		log.Printf("ERROR: [ResultRepository] Failed to save assessment record for userID %s: %v", record.UserID, err)
		return fmt.Errorf("failed to save assessment record for userID %s: %w", record.UserID, err)
	}
	log.Printf("INFO: [ResultRepository] Saved assessment record ID %d for userID %s (instrument '%s', total %d).", record.ID, record.UserID, record.InstrumentID, record.Total)
	return nil
}

// GetRecordsByUserID retrieves a user's completed assessments, newest
// first.
func (r *resultRepository) GetRecordsByUserID(userID string) ([]*models.AssessmentRecord, error) {
	var records []*models.AssessmentRecord
	err := r.db.Where("user_id = ?", userID).Order("completed_at desc").Find(&records).Error
	if err != nil {
		log.Printf("ERROR: [ResultRepository] Failed to retrieve assessment records for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve assessment records for userID %s: %w", userID, err)
	}
	log.Printf("INFO: [ResultRepository] Retrieved %d assessment records for userID %s.", len(records), userID)
	return records, nil
}
