package services

import (
	"context"
	"strings"

	"conference-portal-api/events"
	"conference-portal-api/gateway"
	"conference-portal-api/models"
	"conference-portal-api/utils"

	"github.com/google/uuid"
)

const (
	MinTitleLength    = 5
	MinAbstractLength = 100
	MaxAbstractLength = 2000
)

type SubmitPaperInput struct {
	Title    string
	Abstract string
	Keywords []string
	File     *Upload
}

// SubmissionService applies the paper review lifecycle.
type SubmissionService struct {
	base
}

func NewSubmissionService(d Deps) *SubmissionService {
	return &SubmissionService{base: newBase(d)}
}

func validatePaper(in SubmitPaperInput) (title, abstract string, keywords []string, err error) {
	title = utils.SanitizeInput(in.Title)
	abstract = utils.SanitizeInput(in.Abstract)
	keywords = utils.CleanList(in.Keywords)

	switch {
	case utils.CharCount(title) < MinTitleLength:
		return "", "", nil, invalid("title", "Title must be at least 5 characters")
	case utils.CharCount(abstract) < MinAbstractLength:
		return "", "", nil, invalid("abstract", "Abstract must be at least 100 characters")
	case utils.CharCount(abstract) > MaxAbstractLength:
		return "", "", nil, invalid("abstract", "Abstract must not exceed 2000 characters")
	case len(keywords) == 0:
		return "", "", nil, invalid("keywords", "At least one keyword is required")
	}
	if err := paperFileRule.check(in.File); err != nil {
		return "", "", nil, err
	}
	return title, abstract, keywords, nil
}

// Submit validates a new paper, stores its file and creates the record with status submitted.
func (s *SubmissionService) Submit(ctx context.Context, sess Session, in SubmitPaperInput) (*models.Paper, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}
	title, abstract, keywords, err := validatePaper(in)
	if err != nil {
		return nil, err
	}

	file, err := s.store(ctx, sess.UserID, "papers", in.File)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paper := &models.Paper{
		ID:          uuid.NewString(),
		Title:       title,
		Abstract:    abstract,
		Keywords:    keywords,
		OwnerID:     sess.UserID,
		File:        file,
		Status:      models.PaperStatusSubmitted,
		SubmittedAt: now,
	}
	paper.UpdatedAt = now

	if err := s.gw.Papers().Create(ctx, paper); err != nil {
		s.discard(ctx, file.Path)
		return nil, s.fail(ctx, "create paper", "paper", paper.ID, err)
	}

	s.publish(ctx, events.Event{
		Type:     events.PaperSubmitted,
		EntityID: paper.ID,
		ActorID:  sess.UserID,
		Payload:  map[string]any{"title": paper.Title, "status": paper.Status},
	})
	return paper, nil
}

// Review sets a paper's status and reviewer comment and appends a row to its review trail.
// Both writes commit together, conditional on the version that was read.
func (s *SubmissionService) Review(ctx context.Context, sess Session, id string, status models.PaperStatus, comment string) (*models.Paper, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invalid("status", "Unknown paper status")
	}
	comment = utils.SanitizeInput(comment)
	if comment == "" && (status == models.PaperStatusRejected || status == models.PaperStatusRevisionRequired) {
		return nil, invalid("comment", "A reviewer comment is required when rejecting or requesting revision")
	}

	current, err := s.gw.Papers().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get paper", "paper", id, err)
	}

	var commentPtr *string
	if comment != "" {
		commentPtr = &comment
	}
	reviewer := sess.UserID
	now := s.now()

	err = s.gw.Transaction(ctx, func(tx gateway.Gateway) error {
		if err := tx.Papers().Update(ctx, id, gateway.Fields{
			"status":            status,
			"reviewer_comments": commentPtr,
			"reviewed_by":       &reviewer,
			"reviewed_at":       &now,
			"updated_at":        now,
		}, gateway.IfVersion(current.Version)); err != nil {
			return err
		}
		return tx.PaperReviews().Create(ctx, &models.PaperReview{
			ID:           uuid.NewString(),
			PaperID:      id,
			OldStatus:    current.Status,
			NewStatus:    status,
			Comment:      commentPtr,
			ReviewerID:   sess.UserID,
			ReviewerName: sess.Actor(),
			CreatedAt:    now,
			Audit:        models.Audit{UpdatedAt: now},
		})
	})
	if err != nil {
		return nil, s.fail(ctx, "review paper", "paper", id, err)
	}

	updated, err := s.gw.Papers().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get paper", "paper", id, err)
	}

	s.publish(ctx, events.Event{
		Type:     events.PaperReviewed,
		EntityID: id,
		ActorID:  sess.UserID,
		Payload: map[string]any{
			"owner_id":   updated.OwnerID,
			"title":      updated.Title,
			"old_status": current.Status,
			"status":     status,
			"comment":    comment,
		},
	})
	return updated, nil
}

// Get returns a paper to its owner or an admin. Other callers see ErrNotFound.
func (s *SubmissionService) Get(ctx context.Context, sess Session, id string) (*models.Paper, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}
	paper, err := s.gw.Papers().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get paper", "paper", id, err)
	}
	if !sess.canAccess(paper.OwnerID) {
		return nil, translateGatewayError("get paper", "paper", id, gateway.ErrNotFound)
	}
	return paper, nil
}

// ListForOwner returns the papers of one owner, newest submission first.
func (s *SubmissionService) ListForOwner(ctx context.Context, ownerID string) ([]models.Paper, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, invalid("owner_id", "Owner is required")
	}
	papers, err := s.gw.Papers().List(ctx, gateway.ListOptions{
		Filter: gateway.Fields{"owner_id": ownerID},
		Sort:   []gateway.SortField{gateway.Desc("submitted_at")},
	})
	if err != nil {
		return nil, s.fail(ctx, "list papers", "papers of", ownerID, err)
	}
	return papers, nil
}

// ListAll returns every paper, newest submission first. Admin only.
func (s *SubmissionService) ListAll(ctx context.Context, sess Session) ([]models.Paper, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}
	papers, err := s.gw.Papers().List(ctx, gateway.ListOptions{
		Sort: []gateway.SortField{gateway.Desc("submitted_at")},
	})
	if err != nil {
		return nil, s.fail(ctx, "list papers", "papers", "all", err)
	}
	return papers, nil
}

// History returns the review trail of a paper, oldest first.
func (s *SubmissionService) History(ctx context.Context, sess Session, id string) ([]models.PaperReview, error) {
	if _, err := s.Get(ctx, sess, id); err != nil {
		return nil, err
	}
	reviews, err := s.gw.PaperReviews().List(ctx, gateway.ListOptions{
		Filter: gateway.Fields{"paper_id": id},
		Sort:   []gateway.SortField{gateway.Asc("created_at")},
	})
	if err != nil {
		return nil, s.fail(ctx, "list paper reviews", "paper", id, err)
	}
	return reviews, nil
}
