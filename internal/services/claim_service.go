package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"warranty-service/internal/domain"
	"warranty-service/internal/infra/storage"
	"warranty-service/internal/repository"
	"warranty-service/internal/validation"

	"golang.org/x/sync/errgroup"
)

const (
	ClaimUploadPrefix = "warranty-claims/"
	MaxClaimImages    = 5

	defaultNotifyTimeout = 30 * time.Second
)

// Attachment is one uploaded file of a claim submission.
type Attachment struct {
	Name        string
	ContentType string
	Body        []byte
}

type ClaimSubmission struct {
	Fields  map[string]string
	Invoice *Attachment
	Images  []*Attachment
	Video   *Attachment
}

// ClaimNotifier receives every stored claim. Failures are logged and never
// reach the submitter.
type ClaimNotifier interface {
	Name() string
	Notify(ctx context.Context, claim *domain.WarrantyClaim) error
}

type ClaimService struct {
	repo          repository.ClaimRepository
	uploader      storage.Uploader
	notifiers     []ClaimNotifier
	notifyTimeout time.Duration
	wg            sync.WaitGroup
}

func NewClaimService(r repository.ClaimRepository, u storage.Uploader, notifiers ...ClaimNotifier) *ClaimService {
	return &ClaimService{
		repo:          r,
		uploader:      u,
		notifiers:     notifiers,
		notifyTimeout: defaultNotifyTimeout,
	}
}

func (s *ClaimService) SetNotifyTimeout(d time.Duration) {
	if d > 0 {
		s.notifyTimeout = d
	}
}

// Submit uploads the attachments, validates the claim, stores it and hands
// it to the notifiers in the background. Nothing is stored when an upload
// or a rule fails.
func (s *ClaimService) Submit(ctx context.Context, sub ClaimSubmission) (*domain.WarrantyClaim, error) {
	if err := checkAttachments(sub); err != nil {
		return nil, err
	}

	invoiceURL, err := s.upload(ctx, sub.Invoice)
	if err != nil {
		return nil, fmt.Errorf("upload invoice: %w", err)
	}

	imageURLs, err := s.uploadImages(ctx, sub.Images)
	if err != nil {
		return nil, fmt.Errorf("upload images: %w", err)
	}

	videoURL, err := s.upload(ctx, sub.Video)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	claim, err := validation.ValidateClaim(validation.NewClaimInput(sub.Fields, invoiceURL, imageURLs, videoURL))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("save warranty claim: %w", err)
	}
	log.Printf("claims: created %s for order %s", claim.ID, claim.OrderNumber)

	s.dispatch(ctx, claim)

	return claim, nil
}

func checkAttachments(sub ClaimSubmission) error {
	if sub.Invoice == nil {
		return &validation.FieldError{Field: "invoice", Message: "Invoice is required"}
	}
	if len(sub.Images) < 1 || len(sub.Images) > MaxClaimImages {
		return &validation.FieldError{Field: "images", Message: "Between 1-5 images are required"}
	}
	if sub.Video == nil {
		return &validation.FieldError{Field: "video", Message: "Video is required"}
	}
	return nil
}

func (s *ClaimService) upload(ctx context.Context, a *Attachment) (string, error) {
	return s.uploader.Upload(ctx, storage.Object{
		Body:        a.Body,
		Name:        a.Name,
		ContentType: a.ContentType,
		Prefix:      ClaimUploadPrefix,
	})
}

// uploadImages uploads all images concurrently and keeps their order.
func (s *ClaimService) uploadImages(ctx context.Context, images []*Attachment) ([]string, error) {
	urls := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			url, err := s.upload(gctx, img)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (s *ClaimService) dispatch(ctx context.Context, claim *domain.WarrantyClaim) {
	if len(s.notifiers) == 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		for _, n := range s.notifiers {
			if err := n.Notify(nctx, claim); err != nil {
				log.Printf("claims: %s notify failed for %s: %v", n.Name(), claim.ID, err)
			}
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *ClaimService) Wait() {
	s.wg.Wait()
}
