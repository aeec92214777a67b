// Package scoring computes a project's quality-of-documentation score: an
// integer rating 0-5 derived from the project's metadata and its uploaded
// files. The score is always recomputed from scratch, so recomputing over
// unchanged state always lands on the same value.
package scoring

import (
	"context"
	"strings"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/classifier"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

const (
	// MaxScore caps the rating: one media point, one metadata point,
	// three attachment points.
	MaxScore = 5

	minAbstractWords = 50
	minDesignBlocks  = 4
)

// AttachmentFetcher loads the non-deleted attachments of a project.
type AttachmentFetcher interface {
	FetchAttachments(ctx context.Context, projectID int64) ([]domain.Attachment, error)
}

// ScoreSaver persists the computed score onto the project record.
type ScoreSaver interface {
	SaveProjectScore(ctx context.Context, projectID int64, score int) error
}

// Engine runs the staged evaluation. The stages are plain functions over an
// accumulated score; the only side effect is the final save.
type Engine struct {
	attachments AttachmentFetcher
	scores      ScoreSaver
}

func NewEngine(attachments AttachmentFetcher, scores ScoreSaver) *Engine {
	return &Engine{attachments: attachments, scores: scores}
}

// Rescore evaluates the project and persists the result. The attachment
// fetch is the only stage that can fail; on failure nothing is written and
// the error is returned for the caller to log.
func (e *Engine) Rescore(ctx context.Context, p domain.Project) error {
	score := scoreMedia(p, 0)
	score = scoreMetadata(p, score)

	files, err := e.attachments.FetchAttachments(ctx, p.ID)
	if err != nil {
		return err
	}
	score = scoreAttachments(files, score)

	if score > MaxScore {
		score = MaxScore
	}
	return e.scores.SaveProjectScore(ctx, p.ID, score)
}

// Compute evaluates without persisting; the reconciliation sweep uses it to
// compare stored and derived scores.
func (e *Engine) Compute(ctx context.Context, p domain.Project) (int, error) {
	score := scoreMedia(p, 0)
	score = scoreMetadata(p, score)

	files, err := e.attachments.FetchAttachments(ctx, p.ID)
	if err != nil {
		return 0, err
	}
	score = scoreAttachments(files, score)

	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}

// scoreMedia awards one point when both images are set and the abstract
// runs past the minimum word count. Partial completeness scores nothing.
func scoreMedia(p domain.Project, score int) int {
	hero := ""
	if p.HeroImage != nil {
		hero = *p.HeroImage
	}
	if hero != "" && p.CoverImage != "" && wordCount(p.Abstract) > minAbstractWords {
		return score + 1
	}
	return score
}

// scoreMetadata awards one point when title, authors, contact email, and
// usage rights are all filled in.
func scoreMetadata(p domain.Project, score int) int {
	if p.Name != "" && len(p.Authors) > 0 && p.ContactEmail != "" && p.UsageRights != "" {
		return score + 1
	}
	return score
}

// scoreAttachments folds per-file classifier signals into project-level
// signals and awards up to three points.
func scoreAttachments(files []domain.Attachment, score int) int {
	perFile := make([]classifier.Signals, 0, len(files))
	for _, f := range files {
		perFile = append(perFile, classifier.Classify(f.Tags))
	}
	s := classifier.Fold(perFile)

	if s.HasDesignFile && s.HasStrandInfo {
		score++
	}
	if s.DesignBlocks >= minDesignBlocks && s.HasDescriptionBlock && s.HasIntroductionBlock {
		score++
	}
	if s.HasExperimentBlock {
		score++
	}
	return score
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
